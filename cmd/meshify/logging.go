package main

import (
	"github.com/zeromicro/go-zero/core/logx"
)

// setupLogging configures logx. The TUI owns the terminal, so it logs to
// files unless the config forces console mode.
func setupLogging(cfg cliConfig, tui bool) error {
	mode := cfg.LogMode
	if mode == "" {
		mode = "console"
		if tui {
			mode = "file"
		}
	}
	conf := logx.LogConf{
		ServiceName: "meshify",
		Mode:        mode,
		Encoding:    "plain",
		Path:        cfg.LogPath,
		Level:       cfg.LogLevel,
		KeepDays:    7,
	}
	if err := logx.SetUp(conf); err != nil {
		return err
	}
	logx.DisableStat()
	return nil
}
