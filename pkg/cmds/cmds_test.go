package cmds

import (
	"bytes"
	"testing"

	"github.com/matryer/is"
)

func TestPrintBanner(t *testing.T) {
	is := is.New(t)

	var out bytes.Buffer
	is.NoErr(printBanner(&out, "127.0.0.1:8080"))
	is.Equal(out.String(), "Corgi HTTP request logger is listening on port 8080\nVersion: "+Version+"\n")

	is.True(printBanner(&out, "no-port") != nil)
}

func TestVersionCommand(t *testing.T) {
	is := is.New(t)

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	is.NoErr(root.Execute())
	is.Equal(out.String(), "Version: "+Version+"\n")
}

func TestRunRejectsInvalidFlags(t *testing.T) {
	is := is.New(t)

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run", "--port", "70000"})
	is.True(root.Execute() != nil)

	root = NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run", "--log.level", "loud"})
	is.True(root.Execute() != nil)
}
