package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/Joana-Martins/C-Compiler/setting"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// Expectation is what the driver must print on stdout for a test case.
type Expectation string

const (
	Accept Expectation = "PARSE SUCCESSFUL!"
	Reject Expectation = "PARSE FAILED!"
)

type Config struct {
	ParseCmd string
	Timeout  time.Duration
}

func (c Config) Parse(in string) (string, error) {
	return RunWithInTemplate(in, c.ParseCmd, c.Timeout)
}

func RunWithInTemplate(in, templ string, timeout time.Duration) (string, error) {
	data := struct{ In string }{In: in}
	t := template.New("gencmdline")
	t, err := t.Parse(templ)
	if err != nil {
		return "", err
	}
	var b bytes.Buffer
	err = t.Execute(&b, data)
	if err != nil {
		return "", err
	}
	cmdline := b.String()
	return RunWithTimeout(cmdline, timeout)
}

// RunWithTimeout runs command and returns its stdout. A non-zero exit is
// reported as an error together with the output.
func RunWithTimeout(command string, timeout time.Duration) (string, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return "", fmt.Errorf("malformed command %s", command)
	}
	bin := args[0]
	args = args[1:]
	c := exec.Command(bin, args...)
	var out bytes.Buffer
	c.Stdout = &out
	if err := c.Start(); err != nil {
		return "", err
	}
	rc := make(chan error, 1)
	go func() {
		rc <- c.Wait()
	}()
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-t.C:
		_ = c.Process.Kill()
		// Wait copies the remaining output into out; let it finish first.
		<-rc
		return out.String(), fmt.Errorf("%s timed out", bin)
	case err := <-rc:
		return out.String(), err
	}
}

// Check runs a single case and compares the verdict line.
func Check(cfg Config, tc string, want Expectation) error {
	out, err := cfg.Parse(tc)
	if want == Accept && err != nil {
		return errors.Wrap(err, "parse")
	}
	if want == Reject && err == nil {
		return errors.New("expected a non-zero exit status")
	}
	if !strings.Contains(out, string(want)) {
		return errors.Errorf("expected %q in output, got %q", want, out)
	}
	return nil
}

// ExecuteTests runs every .c file in tdir through the driver.
func ExecuteTests(cfg Config, tdir string, filter *regexp.Regexp, want Expectation) error {
	log := logrus.WithField("dir", tdir)
	log.Info("running tests")
	passcount := 0
	runcount := 0
	tests, err := os.ReadDir(tdir)
	if err != nil {
		return errors.Wrapf(err, "reading %s", tdir)
	}
	for _, t := range tests {
		if !strings.HasSuffix(t.Name(), ".c") {
			continue
		}
		tc := filepath.Join(tdir, t.Name())
		if !filter.MatchString(tc) {
			continue
		}
		runcount += 1
		if err := Check(cfg, tc, want); err != nil {
			fmt.Printf("FAIL: %s - %s\n", tc, err)
			continue
		}
		fmt.Printf("PASS: %s\n", tc)
		passcount += 1
	}
	if passcount != runcount {
		return fmt.Errorf("passed %d/%d", passcount, runcount)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:  "runner",
		Usage: "run the accept and reject corpora through the cc driver",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "filter", Value: ".*", Usage: "A regex filtering which tests to run"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "ini file with a [runner] section"},
			&cli.StringFlag{Name: "dir", Value: "test/testcases", Usage: "corpus root"},
		},
		Action: func(c *cli.Context) error {
			filter, err := regexp.Compile(c.String("filter"))
			if err != nil {
				return errors.Wrap(err, "bad filter")
			}
			st, err := setting.Load(c.String("config"))
			if err != nil {
				return err
			}
			cfg := Config{ParseCmd: st.Runner.ParseCmd, Timeout: st.Runner.Timeout}
			pass := true
			for _, suite := range []struct {
				dir  string
				want Expectation
			}{
				{"accept", Accept},
				{"reject", Reject},
			} {
				tdir := filepath.Join(c.String("dir"), suite.dir)
				if err := ExecuteTests(cfg, tdir, filter, suite.want); err != nil {
					fmt.Printf("%s FAIL: %s\n", tdir, err)
					pass = false
				}
			}
			if !pass {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
