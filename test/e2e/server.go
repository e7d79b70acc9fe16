package e2e

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spiceai/specs/pkg/util"
)

type specsServer struct {
	baseUrl string
	cli     *cli
	cmd     *exec.Cmd
}

func (s *specsServer) start(args ...string) error {
	var err error
	s.cmd, err = s.cli.startCliCmd(append([]string{"serve"}, args...)...)
	if err != nil {
		return err
	}

	return s.waitForServerHealthy()
}

func (s *specsServer) shutdown() error {
	if s.cmd != nil {
		err := s.cmd.Process.Signal(os.Interrupt)
		if err != nil {
			return err
		}
		err = s.cmd.Wait()
		if err != nil {
			return err
		}
		s.cmd = nil
	}
	return nil
}

// Runs a CLI command against the server until its output contains expected
func (s *specsServer) waitForOutput(expected string, args ...string) (string, error) {
	args = append(args, "--server", s.baseUrl)

	maxAttempts := 40
	var output string
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var err error
		output, err = s.cli.runCliCmdOutput(args...)
		if err == nil && strings.Contains(output, expected) {
			return output, nil
		}
		time.Sleep(time.Millisecond * 250)
	}

	return output, fmt.Errorf("'%s' did not print '%s' after %d attempts", strings.Join(args, " "), expected, maxAttempts)
}

func (s *specsServer) waitForServerHealthy() error {
	maxAttempts := 20
	attemptCount := 0
	for {
		time.Sleep(time.Millisecond * 250)

		if attemptCount++; attemptCount > 4*maxAttempts {
			return fmt.Errorf("failed to verify health of %s after %d attempts", s.baseUrl, attemptCount)
		}

		err := util.IsServerHealthy(s.baseUrl, http.DefaultClient)
		if err != nil {
			continue
		}

		break
	}

	return nil
}
