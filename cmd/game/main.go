package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/evade/internal/audio"
	"github.com/tomz197/evade/internal/audio/speaker"
	"github.com/tomz197/evade/internal/config"
	"github.com/tomz197/evade/internal/logging"
	"github.com/tomz197/evade/internal/loop/client"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// stdout is the game screen, so logs only go to a file.
	logger, closer, err := logging.NewFile(cfg.LogFile, cfg.LogLevel, "game")
	if err != nil {
		return err
	}
	defer closer.Close()

	var sound audio.Player = audio.Nop{}
	if cfg.Sound {
		spk := speaker.New()
		if err := spk.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer spk.Close()
			sound = spk
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	c := client.New(bufio.NewReader(os.Stdin), os.Stdout, client.Options{
		Username: os.Getenv("USER"),
		FPS:      cfg.FPS,
		Sound:    sound,
		Logger:   logger,
	})
	logger.Info("local game started", "fps", cfg.FPS, "sound", cfg.Sound)
	return c.Run(ctx)
}
