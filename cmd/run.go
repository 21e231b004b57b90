package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/rahulj/mockmate/internal/app"
	"github.com/rahulj/mockmate/internal/bank"
	"github.com/rahulj/mockmate/internal/session"
	"github.com/rahulj/mockmate/internal/store"
	"github.com/rahulj/mockmate/internal/voice"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	v := viperForCmd(cmd)
	logger := setupLogging(v)

	dbPath, err := resolveDBPath(v)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	catalog, err := bank.Default()
	if err != nil {
		return fmt.Errorf("load question banks: %w", err)
	}

	deps := app.Deps{
		Store:      st,
		Catalog:    catalog,
		Generator:  session.NewGenerator(rand.NewSource(time.Now().UnixNano())),
		Speaker:    voice.NewSpeaker(logger),
		Recognizer: voice.NoRecognizer{},
		Camera:     voice.NoCamera{},
		Logger:     logger,
	}

	return app.Run(deps)
}
