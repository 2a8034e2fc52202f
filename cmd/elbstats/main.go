package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"elb-stats/internal/app"
	"elb-stats/internal/cli"
	"elb-stats/internal/shared/configs"
	"elb-stats/internal/shared/svcerrors"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := cli.Parse(args)
	if err != nil {
		if errors.Is(err, cli.ErrHelpRequested) {
			return 0
		}
		return fail(err)
	}

	cfg, err := configs.LoadConfig(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return svcerrors.ExitInvalidArgument
	}

	ctx := context.Background()

	application, err := app.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		return svcerrors.ExitInternal
	}

	if !opts.AssumeYes {
		exists, err := application.OutputExists(ctx, opts.Window)
		if err != nil {
			return fail(err)
		}
		if exists && !confirmOverwrite() {
			fmt.Println("Aborted.")
			return 0
		}
	}

	path, err := application.Run(ctx, app.RunOptions{
		Window:        opts.Window,
		External:      opts.External,
		Internal:      opts.Internal,
		ForceDownload: opts.ForceDownload,
	})
	if err != nil {
		return fail(err)
	}

	fmt.Println(path)
	return 0
}

// confirmOverwrite asks on stdin whether the existing report for this
// window should be replaced.
func confirmOverwrite() bool {
	fmt.Print("A report for this window already exists. Overwrite? [y/N] ")
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	if svcErr, ok := svcerrors.As(err); ok {
		return svcErr.ExitCode
	}
	return svcerrors.ExitInternal
}
