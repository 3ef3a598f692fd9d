// Command armik solves the joint angles of a four axis arm, either
// for a single wrist goal or for a straight line sweep of goals.
//
//	armik solve --twist 0 -- 0 -150 0
//	armik sweep --start 25,-200,50 --step 0,1,0 --count 101 --format json
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "armik:", err)
		os.Exit(1)
	}
}
