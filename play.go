package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/gonewx/duckshot/pkg/app"
	"github.com/gonewx/duckshot/pkg/config"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the bathtub level",
	Long: `Open the game window and play until Esc is pressed or the window is closed.

The process exits with status 0 if the duck landed in the water,
2 if the round was not won, and 1 on startup errors (for example a
missing bathtub sprite).`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	if flagMaxShots < 0 {
		return fmt.Errorf("--max-shots must be >= 0, got %d", flagMaxShots)
	}

	cfg := app.Config{
		Verbose:   flagVerbose,
		LevelPath: flagConfig,
		AssetsDir: flagAssets,
		DBPath:    flagDBPath,
		MaxShots:  flagMaxShots,
	}
	if cmd.Flags().Changed("volume") {
		if flagVolume < 0 || flagVolume > 1 {
			return fmt.Errorf("--volume must be between 0 and 1, got %.2f", flagVolume)
		}
		cfg.Volume = &flagVolume
	}

	game, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Duck Bathtub Slingshot")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TicksPerSecond)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}

	if game.Won() {
		fmt.Println("won")
		exitCode = 0
	} else {
		fmt.Println("not won")
		exitCode = exitNotWon
	}
	return nil
}
