package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/minaorangina/concentration/config"
	"github.com/minaorangina/concentration/effects"
	"github.com/minaorangina/concentration/engine"
	"github.com/minaorangina/concentration/protocol"
	"go.uber.org/zap"
)

const usage = `commands: start | <card number> | next | quit`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// the table is drawn on stdout, so only log when asked to
	logger := zap.NewNop()
	if cfg.Debug {
		if logger, err = cfg.Logger(); err != nil {
			log.Fatal(err)
		}
	}
	defer logger.Sync()

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		GameID:  "cli",
		Config:  cfg.Game(),
		Clock:   engine.NewFrameClock(cfg.FrameInterval),
		Logger:  logger,
		Rand:    rng,
		Effects: effects.NewText(os.Stdout, cfg.Columns),
	})
	if err != nil {
		log.Fatal(err)
	}

	go ge.Listen(context.Background())
	defer ge.Stop()

	fmt.Println(usage)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		msg, ok, quit := parse(scanner.Text())
		if quit {
			return
		}
		if !ok {
			fmt.Println(usage)
			continue
		}
		if err := ge.Receive(msg); err != nil {
			log.Fatal(err)
		}
	}
}

func parse(line string) (msg protocol.InboundMessage, ok, quit bool) {
	line = strings.ToLower(strings.TrimSpace(line))

	switch line {
	case "q", "quit", "exit":
		return msg, false, true
	case "s", "start":
		return protocol.InboundMessage{Command: protocol.Start}, true, false
	case "n", "next":
		return protocol.InboundMessage{Command: protocol.NextScene}, true, false
	}

	id, err := strconv.Atoi(line)
	if err != nil {
		return msg, false, false
	}
	return protocol.InboundMessage{Command: protocol.Select, CardID: id}, true, false
}
