package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"
)

func BuildCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a static server binary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildServer(output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "bin/server", "binary path")
	return cmd
}

func buildServer(output string) error {
	start := time.Now()
	fmt.Println("==> Building", output)

	build := exec.Command("go", "build", "-trimpath", "-ldflags", "-s -w", "-o", output, "./cmd/server")
	build.Env = append(os.Environ(), "CGO_ENABLED=0")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		return fmt.Errorf("go build failed: %w", err)
	}

	fmt.Printf("==> Done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}
