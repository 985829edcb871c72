package stdlib

import "github.com/axiom-lang/axiom/internal/interp"

// Install registers every intrinsic module on rt. Called once per
// Runtime at program start, mirroring the teacher's single-pass
// stdlib registration in pkg/runtime/stdlib.go.
func Install(rt *interp.Runtime) {
	rt.RegisterModule(algModule(rt))
	rt.RegisterModule(mthModule)
	rt.RegisterModule(numModule)
	rt.RegisterModule(annModule)
	rt.RegisterModule(strModule)
	rt.RegisterModule(colModule)
	rt.RegisterModule(timModule)
	rt.RegisterModule(dfmModule)
	rt.RegisterModule(jsnModule)
	rt.RegisterModule(csvModule)
	rt.RegisterModule(webModule)
	rt.RegisterModule(iooModule)
	rt.RegisterModule(pthModule)
	rt.RegisterModule(envModule)
	rt.RegisterModule(sysModule)
	rt.RegisterModule(gitModule)
	rt.RegisterModule(autModule)
	rt.RegisterModule(clrModule)
	rt.RegisterModule(logModule)
	rt.RegisterModule(tuiModule)
	rt.RegisterModule(pltModule)
	rt.RegisterModule(conModule)
}
