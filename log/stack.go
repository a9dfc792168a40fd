package log

import (
	"path/filepath"
	"runtime"
	"strconv"
)

const pkgPath = "github.com/hashprotocol/AlgoTeal-interpreter/log."

// skipFunc lists the entry points whose frames never appear as the
// caller of an entry.
var skipFunc = map[string]bool{
	pkgPath + "Write":              true,
	pkgPath + "Messagef":           true,
	pkgPath + "Error":              true,
	pkgPath + "Fatal":              true,
	pkgPath + "RecoverAndLogError": true,
}

// caller returns file:line of the nearest frame outside skipFunc,
// or "?:?" when there is none.
func caller() string {
	pc := make([]uintptr, 32)
	n := runtime.Callers(2, pc)
	frames := runtime.CallersFrames(pc[:n])
	for {
		f, more := frames.Next()
		if f.PC != 0 && !skipFunc[f.Function] {
			return filepath.Base(f.File) + ":" + strconv.Itoa(f.Line)
		}
		if !more {
			return "?:?"
		}
	}
}
