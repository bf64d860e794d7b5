package notifications

import (
	"reflect"
	"runtime"
	"time"

	"taskforge/state"

	"go.uber.org/zap"
)

var tasks = []func(){
	sweepCheck,
}

func taskMgr(f func(), interval time.Duration) {
	funcName := runtime.FuncForPC(reflect.ValueOf(f).Pointer()).Name()
	for {
		state.Logger.With(
			zap.String("task", funcName),
		).Info("Running task")
		f()
		time.Sleep(interval)
	}
}

// StartTaskMgr launches the background sweep loop. The engine itself has no
// scheduler; this is the in-binary caller running it on a timer.
func StartTaskMgr() {
	interval := state.Config.Engine.SweepInterval.Duration()

	for _, task := range tasks {
		go taskMgr(task, interval)
		time.Sleep(3 * time.Second)
	}
}
