package stdlib

import (
	"bytes"
	"crypto/rand"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	jsonlib "github.com/segmentio/encoding/json"

	axerrors "github.com/axiom-lang/axiom/internal/errors"
	"github.com/axiom-lang/axiom/internal/interp"
	"github.com/axiom-lang/axiom/internal/value"
)

func mod(name string, fns map[string]value.NativeFunc) interp.Module {
	return interp.Module{Name: name, Functions: fns}
}

var timModule = mod("tim", map[string]value.NativeFunc{
	"now": func(args []value.Value) (value.Value, error) {
		return value.Num(float64(time.Now().Unix())), nil
	},
	"format": func(args []value.Value) (value.Value, error) {
		if len(args) != 2 || args[0].Kind != value.KindNum || args[1].Kind != value.KindStr {
			return value.Value{}, typeErr("Num, Str", "other")
		}
		t := time.Unix(int64(args[0].Num), 0).UTC()
		return value.Str(t.Format(args[1].Str)), nil
	},
})

// dfmModule backs unified-diff text comparisons via the teacher's
// promoted indirect go-difflib dependency.
var dfmModule = mod("dfm", map[string]value.NativeFunc{
	"diff": func(args []value.Value) (value.Value, error) {
		if len(args) != 2 || args[0].Kind != value.KindStr || args[1].Kind != value.KindStr {
			return value.Value{}, typeErr("Str, Str", "other")
		}
		out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(args[0].Str),
			B:        difflib.SplitLines(args[1].Str),
			FromFile: "a",
			ToFile:   "b",
			Context:  3,
		})
		if err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("dfm.diff: %v", err), axerrors.ZeroSpan)
		}
		return value.Str(out), nil
	},
})

// jsnModule uses the teacher's promoted segmentio/encoding/json dep in
// place of encoding/json, matching the codegen pipeline's choice.
var jsnModule = mod("jsn", map[string]value.NativeFunc{
	"parse": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		var raw interface{}
		if err := jsonlib.Unmarshal([]byte(args[0].Str), &raw); err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("jsn.parse: %v", err), axerrors.ZeroSpan)
		}
		return fromJSON(raw), nil
	},
	"stringify": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Value{}, arityErr(1, len(args))
		}
		b, err := jsonlib.Marshal(toJSON(args[0]))
		if err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("jsn.stringify: %v", err), axerrors.ZeroSpan)
		}
		return value.Str(string(b)), nil
	},
})

func fromJSON(raw interface{}) value.Value {
	switch v := raw.(type) {
	case nil:
		return value.Nil()
	case float64:
		return value.Num(v)
	case string:
		return value.Str(v)
	case bool:
		return value.Bol(v)
	case []interface{}:
		items := make([]value.Value, len(v))
		for i, it := range v {
			items[i] = fromJSON(it)
		}
		return value.Lst(value.NewList(items))
	case map[string]interface{}:
		m := value.NewMap()
		for k, val := range v {
			m.Set(k, fromJSON(val))
		}
		return value.MapVal(m)
	default:
		return value.Nil()
	}
}

func toJSON(v value.Value) interface{} {
	switch v.Kind {
	case value.KindNum:
		return v.Num
	case value.KindStr:
		return v.Str
	case value.KindBol:
		return v.Bol
	case value.KindNil:
		return nil
	case value.KindLst:
		items := v.Lst.Items()
		out := make([]interface{}, len(items))
		for i, it := range items {
			out[i] = toJSON(it)
		}
		return out
	case value.KindMap:
		out := make(map[string]interface{})
		for _, k := range v.Map.Keys() {
			val, _ := v.Map.Get(k)
			out[k] = toJSON(val)
		}
		return out
	default:
		return v.Display()
	}
}

var csvModule = mod("csv", map[string]value.NativeFunc{
	"parse": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		rows, err := csv.NewReader(strings.NewReader(args[0].Str)).ReadAll()
		if err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("csv.parse: %v", err), axerrors.ZeroSpan)
		}
		out := make([]value.Value, len(rows))
		for i, row := range rows {
			cells := make([]value.Value, len(row))
			for j, c := range row {
				cells[j] = value.Str(c)
			}
			out[i] = value.Lst(value.NewList(cells))
		}
		return value.Lst(value.NewList(out)), nil
	},
	"stringify": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindLst {
			return value.Value{}, typeErr("Lst", "other")
		}
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		for _, rowVal := range args[0].Lst.Items() {
			if rowVal.Kind != value.KindLst {
				return value.Value{}, typeErr("Lst", rowVal.TypeName())
			}
			cells := rowVal.Lst.Items()
			record := make([]string, len(cells))
			for i, c := range cells {
				record[i] = c.Display()
			}
			if err := w.Write(record); err != nil {
				return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("csv.stringify: %v", err), axerrors.ZeroSpan)
			}
		}
		w.Flush()
		return value.Str(buf.String()), nil
	},
})

// webModule covers plain HTTP GET with net/http and sending a single
// WebSocket ping frame (no pong is awaited) with the teacher's
// gorilla/websocket dependency.
var webModule = mod("web", map[string]value.NativeFunc{
	"get": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		resp, err := http.Get(args[0].Str)
		if err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("web.get: %v", err), axerrors.ZeroSpan)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("web.get: %v", err), axerrors.ZeroSpan)
		}
		return value.Str(string(body)), nil
	},
	"wsPing": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		conn, _, err := websocket.DefaultDialer.Dial(args[0].Str, nil)
		if err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("web.wsPing: %v", err), axerrors.ZeroSpan)
		}
		defer conn.Close()
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("web.wsPing: %v", err), axerrors.ZeroSpan)
		}
		return value.Bol(true), nil
	},
})

// ioAferoFS is the process-wide filesystem the ioo module operates on;
// swapping it for an in-memory afero.Fs lets ioo run without touching
// disk.
var ioAferoFS afero.Fs = afero.NewOsFs()

var iooModule = mod("ioo", map[string]value.NativeFunc{
	"read": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		b, err := afero.ReadFile(ioAferoFS, args[0].Str)
		if err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("ioo.read: %v", err), axerrors.ZeroSpan)
		}
		return value.Str(string(b)), nil
	},
	"write": func(args []value.Value) (value.Value, error) {
		if len(args) != 2 || args[0].Kind != value.KindStr || args[1].Kind != value.KindStr {
			return value.Value{}, typeErr("Str, Str", "other")
		}
		if err := afero.WriteFile(ioAferoFS, args[0].Str, []byte(args[1].Str), 0o644); err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("ioo.write: %v", err), axerrors.ZeroSpan)
		}
		return value.Nil(), nil
	},
	"exists": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		ok, err := afero.Exists(ioAferoFS, args[0].Str)
		if err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("ioo.exists: %v", err), axerrors.ZeroSpan)
		}
		return value.Bol(ok), nil
	},
})

var pthModule = mod("pth", map[string]value.NativeFunc{
	"join": func(args []value.Value) (value.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			if a.Kind != value.KindStr {
				return value.Value{}, typeErr("Str", a.TypeName())
			}
			parts[i] = a.Str
		}
		return value.Str(filepath.Join(parts...)), nil
	},
	"base": unaryStr(filepath.Base),
	"dir":  unaryStr(filepath.Dir),
})

var envModule = mod("env", map[string]value.NativeFunc{
	"get": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		v, ok := os.LookupEnv(args[0].Str)
		if !ok {
			return value.Nil(), nil
		}
		return value.Str(v), nil
	},
	"set": func(args []value.Value) (value.Value, error) {
		if len(args) != 2 || args[0].Kind != value.KindStr || args[1].Kind != value.KindStr {
			return value.Value{}, typeErr("Str, Str", "other")
		}
		if err := os.Setenv(args[0].Str, args[1].Str); err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("env.set: %v", err), axerrors.ZeroSpan)
		}
		return value.Nil(), nil
	},
})

var sysModule = mod("sys", map[string]value.NativeFunc{
	"uuid": func(args []value.Value) (value.Value, error) {
		return value.Str(uuid.NewString()), nil
	},
	"args": func(args []value.Value) (value.Value, error) {
		items := make([]value.Value, len(os.Args))
		for i, a := range os.Args {
			items[i] = value.Str(a)
		}
		return value.Lst(value.NewList(items)), nil
	},
	"randomHex": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindNum {
			return value.Value{}, typeErr("Num", "other")
		}
		hexStr, err := randomHex(int(args[0].Num))
		if err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("sys.randomHex: %v", err), axerrors.ZeroSpan)
		}
		return value.Str(hexStr), nil
	},
})

// gitModule shells out to the system git binary; no Go git library
// appears anywhere in the retrieved corpus (DESIGN.md).
var gitModule = mod("git", map[string]value.NativeFunc{
	"headSha": func(args []value.Value) (value.Value, error) {
		dir := "."
		if len(args) == 1 {
			if args[0].Kind != value.KindStr {
				return value.Value{}, typeErr("Str", args[0].TypeName())
			}
			dir = args[0].Str
		}
		cmd := exec.Command("git", "rev-parse", "HEAD")
		cmd.Dir = dir
		out, err := cmd.Output()
		if err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("git.headSha: %v", err), axerrors.ZeroSpan)
		}
		return value.Str(strings.TrimSpace(string(out))), nil
	},
})

// autModule backs a minimal auth surface with the teacher's actual
// web/auth dependencies: HS256 JWTs and bcrypt password hashing.
var autSigningKey = []byte("axiom-dev-signing-key")

var autModule = mod("aut", map[string]value.NativeFunc{
	"sign": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": args[0].Str})
		signed, err := token.SignedString(autSigningKey)
		if err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("aut.sign: %v", err), axerrors.ZeroSpan)
		}
		return value.Str(signed), nil
	},
	"verify": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		token, err := jwt.Parse(args[0].Str, func(t *jwt.Token) (interface{}, error) {
			return autSigningKey, nil
		})
		if err != nil || !token.Valid {
			return value.Bol(false), nil
		}
		return value.Bol(true), nil
	},
	"hash": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		h, err := bcrypt.GenerateFromPassword([]byte(args[0].Str), bcrypt.DefaultCost)
		if err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("aut.hash: %v", err), axerrors.ZeroSpan)
		}
		return value.Str(string(h)), nil
	},
	"checkHash": func(args []value.Value) (value.Value, error) {
		if len(args) != 2 || args[0].Kind != value.KindStr || args[1].Kind != value.KindStr {
			return value.Value{}, typeErr("Str, Str", "other")
		}
		err := bcrypt.CompareHashAndPassword([]byte(args[1].Str), []byte(args[0].Str))
		return value.Bol(err == nil), nil
	},
})

var clrModule = mod("clr", map[string]value.NativeFunc{
	"red":   colorize(color.FgRed),
	"green": colorize(color.FgGreen),
	"bold": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		return value.Str(color.New(color.Bold).Sprint(args[0].Str)), nil
	},
})

func colorize(attr color.Attribute) value.NativeFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		return value.Str(color.New(attr).Sprint(args[0].Str)), nil
	}
}

// axiomLogger is the zap logger backing the log intrinsic, mirroring
// the teacher's structured-logging setup in internal/web.
var axiomLogger = newAxiomLogger()

func newAxiomLogger() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

var logModule = mod("log", map[string]value.NativeFunc{
	"info":  logAt(func(msg string) { axiomLogger.Info(msg) }),
	"warn":  logAt(func(msg string) { axiomLogger.Warn(msg) }),
	"error": logAt(func(msg string) { axiomLogger.Error(msg) }),
})

func logAt(f func(string)) value.NativeFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		f(args[0].Str)
		return value.Nil(), nil
	}
}

// tuiModule renders a bordered box via the ardnew-aenv-sourced
// lipgloss dependency.
var tuiModule = mod("tui", map[string]value.NativeFunc{
	"box": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
		return value.Str(style.Render(args[0].Str)), nil
	},
})

var pltModule = mod("plt", map[string]value.NativeFunc{
	"os": func(args []value.Value) (value.Value, error) {
		return value.Str(runtime.GOOS), nil
	},
	"arch": func(args []value.Value) (value.Value, error) {
		return value.Str(runtime.GOARCH), nil
	},
})

// conModule backs a yes/no confirmation prompt via the teacher's
// AlecAivazis/survey dependency (internal/cli/commands `new`).
var conModule = mod("con", map[string]value.NativeFunc{
	"confirm": func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		answer := false
		prompt := &survey.Confirm{Message: args[0].Str}
		if err := survey.AskOne(prompt, &answer); err != nil {
			return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("con.confirm: %v", err), axerrors.ZeroSpan)
		}
		return value.Bol(answer), nil
	},
})

// randomHex backs sys.randomHex, generating n random bytes hex-encoded
// for token-style strings, the teacher's token-generation idiom.
func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
