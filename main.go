package main

import (
	"github.com/golang/glog"

	"go.searchlight.dev/corgi/pkg/cmds"
)

func main() {
	if err := cmds.NewRootCmd().Execute(); err != nil {
		glog.Fatal(err)
	}
}
