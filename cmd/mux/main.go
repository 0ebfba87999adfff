// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/mux/main.go
// Summary: The `mux` CLI: new/attach/list/kill subcommands over the
// session server. Kept thin; the actual server and client runtimes live
// in internal/runtime.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"

	"mux/config"
	"mux/ids"
	"mux/internal/runtime/client"
	"mux/internal/runtime/server"
	"mux/protocol"
	"mux/rect"
	"mux/texel"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "mux:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: mux <new|attach|list|kill> [flags]")
	}

	switch args[0] {
	case "new":
		return runNew(args[1:])
	case "attach":
		return runAttach(args[1:])
	case "list":
		return runList(args[1:])
	case "kill":
		return runKill(args[1:])
	default:
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

func loadConfig() *config.Config {
	path, err := config.ConfigPath()
	if err != nil {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("mux: failed to load config: %v, using defaults", err)
		return config.Default()
	}
	return cfg
}

// parseNewFlags parses `mux new`'s flags in isolation so its defaulting
// behavior (session name defaults to "default") is testable without
// starting a real server.
func parseNewFlags(args []string) (name string, verbose bool, err error) {
	fs := flag.NewFlagSet("mux new", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	n := fs.String("s", "default", "session name")
	v := fs.Bool("verbose", false, "enable verbose server logging")
	if err := fs.Parse(args); err != nil {
		return "", false, err
	}
	return *n, *v, nil
}

func runNew(args []string) error {
	name, verbose, err := parseNewFlags(args)
	if err != nil {
		return err
	}

	server.SetVerboseLogging(verbose)

	socketPath, err := config.SocketPath(name)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	if _, err := os.Stat(socketPath); err == nil {
		if server.IsAlive(socketPath) {
			return fmt.Errorf("new: a session named %q is already running", name)
		}
		// Stale socket from a server that crashed without cleaning up.
		os.Remove(socketPath)
	}

	sessionPath, err := config.SessionFilePath(name)
	if err != nil {
		return fmt.Errorf("resolve session path: %w", err)
	}

	var sess *texel.Session
	if _, err := os.Stat(sessionPath); err == nil {
		sess, err = texel.LoadFrom(sessionPath)
		if err != nil {
			return fmt.Errorf("load existing session %q: %w", name, err)
		}
	} else {
		counter := ids.NewCounter()
		sess, err = texel.NewSession(counter.NextSession(), name, counter)
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
	}

	historyPath, err := config.SessionsDir()
	if err != nil {
		return fmt.Errorf("resolve history dir: %w", err)
	}
	hist, err := server.OpenHistory(filepath.Join(historyPath, "history.db"))
	if err != nil {
		return fmt.Errorf("open history log: %w", err)
	}

	srv, err := server.New(sess, rect.Rect{W: 80, H: 24}, hist, sessionPath)
	if err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	l, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", socketPath, err)
	}
	defer os.Remove(socketPath)

	fmt.Printf("session %q started on %s\n", name, socketPath)
	return srv.Serve(l)
}

func runAttach(args []string) error {
	fs := flag.NewFlagSet("mux attach", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("t", "", "session name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("attach: -t <name> is required")
	}

	socketPath, err := config.SocketPath(*name)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}

	cfg := loadConfig()
	machine, err := config.BuildMachine(cfg)
	if err != nil {
		return fmt.Errorf("build leader machine: %w", err)
	}

	c, err := client.Dial(socketPath, machine)
	if err != nil {
		return err
	}
	defer c.Close()

	if configPath, err := config.ConfigPath(); err == nil {
		if watcher, err := config.Watch(configPath); err == nil {
			defer watcher.Close()
			go func() {
				for newCfg := range watcher.Updates {
					if m, err := config.BuildMachine(newCfg); err == nil {
						c.SetMachine(m)
					}
				}
			}()
		}
	}

	restore, err := c.EnterRawMode()
	if err != nil {
		return err
	}
	defer restore()

	err = c.Run(os.Stdin, os.Stdout)
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("mux list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return err
	}

	dir, err := config.SocketsDir()
	if err != nil {
		return fmt.Errorf("resolve sockets dir: %w", err)
	}
	sessions, err := server.ListSessions(dir)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions")
		return nil
	}
	for _, s := range sessions {
		if !s.Alive {
			fmt.Printf("%s\t(not responding)\n", s.Name)
			continue
		}
		fmt.Printf("%s\t%d windows\t%d panes\n", s.Name, s.Windows, s.Panes)
	}
	return nil
}

func runKill(args []string) error {
	fs := flag.NewFlagSet("mux kill", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("t", "", "session name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("kill: -t <name> is required")
	}

	socketPath, err := config.SocketPath(*name)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}

	conn, err := server.Dial(socketPath)
	if err != nil {
		return fmt.Errorf("kill: session %q is not running: %w", *name, err)
	}
	defer conn.Close()

	wire := protocol.EncodeCommand(texel.MuxCommand{Kind: texel.KillSession})
	return protocol.WriteMessage(conn, protocol.TypeCommand, wire)
}
