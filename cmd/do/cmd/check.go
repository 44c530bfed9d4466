package cmd

import (
	"bytes"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

type check struct {
	name string
	args []string
}

func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run vet and tests in parallel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks([]check{
				{name: "vet", args: []string{"vet", "./..."}},
				{name: "test", args: []string{"test", "-race", "./..."}},
			})
		},
	}
}

func runChecks(checks []check) error {
	start := time.Now()
	var wg sync.WaitGroup
	errCh := make(chan error, len(checks))

	for _, c := range checks {
		wg.Add(1)
		go func(c check) {
			defer wg.Done()

			checkStart := time.Now()
			var out bytes.Buffer
			cmd := exec.Command("go", c.args...)
			cmd.Stdout = &out
			cmd.Stderr = &out

			if err := cmd.Run(); err != nil {
				errCh <- fmt.Errorf("%s: %w\n%s", c.name, err, out.String())
				return
			}
			fmt.Printf("[%s] ok (%s)\n", c.name, time.Since(checkStart).Round(time.Millisecond))
		}(c)
	}

	wg.Wait()
	close(errCh)

	var failed int
	for err := range errCh {
		failed++
		fmt.Println("error:", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}

	fmt.Printf("done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}
