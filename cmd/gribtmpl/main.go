// Command gribtmpl inspects and writes streams of templated GRIB2 sections.
package main

import (
	"github.com/golang/glog"

	"github.com/sdifrance/gribtemplates/cmd/gribtmpl/cmd"
)

func main() {
	defer glog.Flush()
	cmd.Execute()
}
