// Command relay is a waPC guest that passes every call of the test actor on
// to the actor bound as "default" and returns its result.
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o relay.wasm ./wasm/relay
//	wactor serve --actors "1=fixture,2=wasm(relay.wasm)" --bindings default=1
package main

import (
	"github.com/ValentinKolb/wActor/lib/actor"
	"github.com/ValentinKolb/wActor/lib/guest"
	"go.uber.org/zap"
)

func init() {
	actor.SetLogger(guest.NewLogger(zap.InfoLevel))

	d := actor.NewDispatcher(actor.Namespace)
	actor.ForwardingHandlers(guest.NewHost(actor.DefaultBinding)).Register(d)
	guest.Serve(d)
}

func main() {}
