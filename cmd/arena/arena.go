package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var (
	ErrHumanInArena = errors.New("arena only plays bots")
	ErrUnfinished   = errors.New("bots stopped before the game ended")
)

type matchConfig struct {
	side    int
	x       string
	o       string
	games   int
	verbose bool
}

// Tally counts finished games per outcome.
type Tally map[entity.Outcome]int

func newRootCommand() *cobra.Command {
	conf := matchConfig{}

	cmd := &cobra.Command{
		Use:          "arena",
		Short:        "Play tic-tac-toe bots against each other",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if conf.verbose {
				level = slog.LevelDebug
			}

			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			tally, err := runMatches(logger, conf)
			if err != nil {
				return err
			}

			return printTally(cmd.OutOrStdout(), tally)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&conf.side, "side", 3, "board side")
	flags.StringVar(&conf.x, "x", string(entity.RoleMinimaxHard), "role playing X, moves first")
	flags.StringVar(&conf.o, "o", string(entity.RoleRandom), "role playing O")
	flags.IntVar(&conf.games, "games", 10, "number of games")
	flags.BoolVar(&conf.verbose, "verbose", false, "log every finished board")

	return cmd
}

func runMatches(logger *slog.Logger, conf matchConfig) (Tally, error) {
	log := logger.With("component", "arena")

	settings, err := conf.settings()
	if err != nil {
		return nil, err
	}

	tally := make(Tally)

	for i := range conf.games {
		game, err := entity.NewGame(fmt.Sprintf("arena-%d", i+1), settings)
		if err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}

		controller, err := tictactoe.NewGameController(game)
		if err != nil {
			return nil, fmt.Errorf("failed to create game controller: %w", err)
		}

		if _, err = controller.PlayBots(); err != nil {
			return nil, fmt.Errorf("game %s: %w", game.ID, err)
		}

		if !game.IsFinished() {
			return nil, fmt.Errorf("game %s: %w", game.ID, ErrUnfinished)
		}

		tally[game.Winner]++

		log.Debug("game finished", "gameID", game.ID, "winner", game.Winner, "board", game.Board.String())
	}

	log.Info("matches played",
		"games", conf.games,
		"x", settings.FirstRole,
		"o", settings.SecondRole,
		"xWins", tally[entity.OutcomeX],
		"oWins", tally[entity.OutcomeO],
		"ties", tally[entity.OutcomeTie],
	)

	return tally, nil
}

func (that matchConfig) settings() (entity.Settings, error) {
	x, err := entity.ParseRole(that.x)
	if err != nil {
		return entity.Settings{}, err
	}

	o, err := entity.ParseRole(that.o)
	if err != nil {
		return entity.Settings{}, err
	}

	if x.IsHuman() || o.IsHuman() {
		return entity.Settings{}, fmt.Errorf("%w: %w", ErrHumanInArena, apperror.ErrHumanMove)
	}

	settings := entity.Settings{
		Side:       that.side,
		FirstMark:  entity.MarkX,
		FirstRole:  x,
		SecondRole: o,
	}

	if err = settings.Validate(); err != nil {
		return entity.Settings{}, err
	}

	return settings, nil
}

func printTally(w io.Writer, tally Tally) error {
	_, err := fmt.Fprintf(w, "X wins: %d\nO wins: %d\nties: %d\n",
		tally[entity.OutcomeX], tally[entity.OutcomeO], tally[entity.OutcomeTie])

	return err
}
