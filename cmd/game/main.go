package main

import (
	"flag"
	"os"

	"github.com/Garsondee/Cube-Trails/internal/audio"
	"github.com/Garsondee/Cube-Trails/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		assetDir     string
		levelPath    string
		musicPath    string
		speed        int
		captureSpeed int
		showGrid     bool
		verbose      bool
	)
	flag.StringVar(&assetDir, "assets", "", "asset directory holding img/; empty draws built-in sprites")
	flag.StringVar(&levelPath, "level", "", "level grid file replacing the built-in arena")
	flag.StringVar(&musicPath, "music", "", "match music (.ogg or .wav)")
	flag.IntVar(&speed, "speed", 4, "pixels per tick while stepping; must divide 16")
	flag.IntVar(&captureSpeed, "capture-speed", 2, "speed after taking the flag; 0 keeps the current speed")
	flag.BoolVar(&showGrid, "grid", false, "draw tile grid lines")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	log := logrus.StandardLogger()

	cfg := game.DefaultConfig()
	cfg.Speed = speed
	cfg.Capture.Speed = captureSpeed
	cfg.ShowGrid = showGrid
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("bad flags")
	}

	var sprites *game.Sprites
	if assetDir != "" {
		var err error
		sprites, err = game.LoadSprites(os.DirFS(assetDir))
		if err != nil {
			log.WithError(err).WithField("dir", assetDir).Fatal("sprites")
		}
	} else {
		sprites = game.GenerateSprites()
	}

	def := game.DefaultLevel()
	if levelPath != "" {
		src, err := os.ReadFile(levelPath)
		if err != nil {
			log.WithError(err).Fatal("level")
		}
		def.Name = levelPath
		def.Source = string(src)
	}
	// Parse once up front so a bad level fails before the window opens.
	level, err := game.NewLevel(def, sprites.Tileset, sprites.TilesetCells())
	if err != nil {
		log.WithError(err).Fatal("level")
	}

	face, err := game.NewHUDFace()
	if err != nil {
		log.WithError(err).Warn("HUD font unavailable, using debug text")
	}

	am := audio.NewManager(audio.LoadConfig(), log)
	defer am.Close()
	var music game.Music
	if am.Enabled() && musicPath != "" {
		if err := am.Init(); err != nil {
			log.WithError(err).Warn("audio disabled")
		} else if err := am.Load(cfg.MatchTrack, musicPath); err != nil {
			log.WithError(err).Warn("match music not loaded")
		} else {
			music = am
		}
	}

	factory := func(bus *game.InputBus) (game.State, error) {
		return game.NewMatch(game.MatchSetup{
			Config:        cfg,
			Level:         level,
			Cubes:         [2]game.Cube{sprites.Cube(cfg.PlayerCubes[0]), sprites.Cube(cfg.PlayerCubes[1])},
			FlagSprite:    sprites.Flag,
			CaptureSprite: sprites.Captured,
			Bus:           bus,
			Music:         music,
			Logger:        log,
			Face:          face,
		})
	}
	loop, err := game.NewLoop(factory, log)
	if err != nil {
		log.WithError(err).Fatal("start")
	}
	defer loop.Stop()

	ebiten.SetWindowTitle("Cube Trails")
	ebiten.SetWindowSize(game.ScreenWidth, game.ScreenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(game.TPS)
	if err := ebiten.RunGame(loop); err != nil {
		log.WithError(err).Fatal("game exited")
	}
}
