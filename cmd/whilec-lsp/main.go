// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"whilec/internal/config"
	"whilec/internal/lsp"
)

const lsName = "whilec" // Name identifier for the language server

var (
	version = "0.1.0"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	configPath := flag.String("config", "", "config file")
	debug := flag.Bool("debug", false, "enable glsp protocol debug logs")
	flag.Parse()

	cfg, _, err := config.Discover(*configPath)
	if err != nil {
		cfg = config.Default()
	}

	// Logs go to the configured file or stderr; stdout carries the protocol
	commonlog.Configure(max(1, cfg.Log.Verbosity), cfg.LogPath())
	log := commonlog.GetLogger("whilec.lsp")
	if err != nil {
		log.Warningf("ignoring config: %s", err)
	}

	whileHandler := lsp.NewWhileHandler()

	// Wire up the handler with specific LSP method implementations
	handler = protocol.Handler{
		Initialize:                     whileHandler.Initialize,
		Initialized:                    whileHandler.Initialized,
		Shutdown:                       whileHandler.Shutdown,
		SetTrace:                       whileHandler.SetTrace,
		TextDocumentDidOpen:            whileHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           whileHandler.TextDocumentDidClose,
		TextDocumentDidChange:          whileHandler.TextDocumentDidChange,
		TextDocumentCompletion:         whileHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: whileHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, *debug)

	log.Infof("Starting whilec LSP server %s", version)

	// Start the server over standard input/output (used by most editors for LSP)
	if err := s.RunStdio(); err != nil {
		log.Errorf("Error starting whilec LSP server: %s", err)
		os.Exit(1)
	}
}
