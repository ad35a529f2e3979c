// Command tests is the test actor built as a waPC guest.
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o tests.wasm ./wasm/tests
package main

import (
	"github.com/ValentinKolb/wActor/lib/actor"
	"github.com/ValentinKolb/wActor/lib/guest"
	"go.uber.org/zap"
)

func init() {
	actor.SetLogger(guest.NewLogger(zap.InfoLevel))

	d := actor.NewDispatcher(actor.Namespace)
	actor.FixtureHandlers().Register(d)
	guest.Serve(d)
}

func main() {}
