package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/park285/boardframe/internal/board"
	"github.com/park285/boardframe/internal/builder"
	"github.com/park285/boardframe/internal/config"
	"github.com/park285/boardframe/internal/httpapi"
	"github.com/park285/boardframe/internal/obslog"
	"github.com/park285/boardframe/internal/render"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp().Run(ctx, os.Args)
	obslog.Close()
	stop()
	if err != nil {
		log.Fatalf("boardframe: %v", err)
	}
}

func newApp() *cli.Command {
	fenFlag := &cli.StringFlag{Name: "fen", Usage: "position in FEN (default: start position)"}
	perspectiveFlag := &cli.StringFlag{Name: "perspective", Aliases: []string{"p"}, Usage: "white or black at the bottom"}
	outFlag := &cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file", Required: true}
	remoteFlag := &cli.StringFlag{Name: "remote", Usage: "render on a boardframe server at this base URL"}
	debugFlag := &cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "debug logging"}

	return &cli.Command{
		Name:  "boardframe",
		Usage: "render chess positions to PNG and games to animated GIF",
		Flags: []cli.Flag{debugFlag},
		Commands: []*cli.Command{
			{
				Name:  "still",
				Usage: "render one position to PNG",
				Flags: []cli.Flag{
					fenFlag, perspectiveFlag, outFlag, remoteFlag,
					&cli.StringFlag{Name: "highlight", Usage: "squares to highlight, e.g. e2,e4"},
				},
				Action: runStill,
			},
			{
				Name:  "gif",
				Usage: "replay UCI moves into an animated GIF",
				Flags: []cli.Flag{
					fenFlag, perspectiveFlag, outFlag, remoteFlag,
					&cli.StringFlag{Name: "moves", Aliases: []string{"m"}, Usage: "UCI moves separated by spaces or commas"},
					&cli.BoolFlag{Name: "coords", Value: true, Usage: "draw coordinate labels"},
				},
				Action: runGIF,
			},
			{
				Name:   "serve",
				Usage:  "serve /board.png and /game.gif over HTTP",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "addr", Usage: "listen address (overrides HTTP_ADDR)"}},
				Action: runServe,
			},
		},
	}
}

type env struct {
	cfg    *config.AppConfig
	logger *zap.Logger
}

func setup(c *cli.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if c.Bool("debug") {
		cfg.Log.Level = "debug"
	}
	if err := obslog.Init(cfg.Log); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return &env{cfg: cfg, logger: obslog.L()}, nil
}

func (e *env) perspective(c *cli.Command) (board.Perspective, error) {
	if raw := strings.TrimSpace(c.String("perspective")); raw != "" {
		return board.ParsePerspective(raw)
	}
	return e.cfg.Perspective, nil
}

func runStill(ctx context.Context, c *cli.Command) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	p, err := e.perspective(c)
	if err != nil {
		return err
	}
	highlights := board.ParseSquares(c.String("highlight"))

	var data []byte
	if remote := c.String("remote"); remote != "" {
		names := make([]string, 0, len(highlights))
		for _, sq := range highlights {
			names = append(names, sq.String())
		}
		data, err = httpapi.NewClient(remote).Board(ctx, c.String("fen"), p.String(), names)
	} else {
		var b *board.Board
		b, err = board.FromFEN(c.String("fen"))
		if err != nil {
			return err
		}
		for _, sq := range highlights {
			b.Highlight(sq.String())
		}
		deps, derr := builder.New(ctx, e.cfg, e.logger)
		if derr != nil {
			return derr
		}
		defer deps.Close()
		data, err = deps.Renderer.Picture(ctx, b, p)
	}
	if err != nil {
		return err
	}
	return writeOutput(e.logger, c.String("out"), data)
}

func runGIF(ctx context.Context, c *cli.Command) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	p, err := e.perspective(c)
	if err != nil {
		return err
	}
	moves := strings.Fields(strings.ReplaceAll(c.String("moves"), ",", " "))

	var data []byte
	if remote := c.String("remote"); remote != "" {
		data, err = httpapi.NewClient(remote).Game(ctx, c.String("fen"), moves, p.String(), c.Bool("coords"))
	} else {
		data, err = localGIF(ctx, e, c.String("fen"), moves, p, c.Bool("coords"))
	}
	if err != nil {
		return err
	}
	return writeOutput(e.logger, c.String("out"), data)
}

func localGIF(ctx context.Context, e *env, fen string, moves []string, p board.Perspective, coords bool) ([]byte, error) {
	game, err := board.ReplayUCI(fen, moves)
	if err != nil {
		return nil, err
	}
	deps, err := builder.New(ctx, e.cfg, e.logger)
	if err != nil {
		return nil, err
	}
	defer deps.Close()
	seq, err := deps.Renderer.NewSequence(render.SequenceOptions{
		Perspective: p,
		Coordinates: coords,
		Side:        e.cfg.FrameSide,
	})
	if err != nil {
		return nil, err
	}
	for _, snap := range board.GameSnapshots(game) {
		seq.AddBoard(snap)
	}
	code, title := board.Opening(game)
	e.logger.Info("gif_rendering",
		zap.Int("frames", seq.Len()),
		zap.String("perspective", p.String()),
		zap.String("eco_code", code),
		zap.String("eco_title", title),
	)
	return seq.GIF(ctx)
}

func runServe(ctx context.Context, c *cli.Command) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	addr := e.cfg.HTTPAddr
	if v := strings.TrimSpace(c.String("addr")); v != "" {
		addr = v
	}
	deps, err := builder.New(ctx, e.cfg, e.logger)
	if err != nil {
		return err
	}
	defer deps.Close()
	return httpapi.ListenAndServe(ctx, addr, deps.Handler, e.logger)
}

func writeOutput(logger *zap.Logger, path string, data []byte) error {
	if data == nil {
		return fmt.Errorf("no image produced")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("image_written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
