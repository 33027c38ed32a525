// Package client implements the driver contract shared by a human or AI
// remote player: send input, receive the latest PlayerGame snapshot,
// repeat. A human's actual input capture and rendering are out-of-scope
// external collaborators (spec §1); an AI's are an ai.Driver. Grounded on
// original_source/dogfights/main.rs's remote_client and PlayerGame::run.
package client

import (
	"bytes"
	"fmt"

	"github.com/dogfights/broker/internal/ai"
	"github.com/dogfights/broker/internal/codec"
	"github.com/dogfights/broker/internal/input"
	"github.com/dogfights/broker/internal/logging"
	"github.com/dogfights/broker/internal/networking"
	"github.com/dogfights/broker/internal/simulation"
)

// RunAI connects to serverAddr from localAddr and drives the connection
// with driver's strategy until driver.Move reports Quit or the connection
// is lost. It joins by sending a priming zero Input: the server assigns a
// player id on a peer's first datagram, embedded in every PlayerGame
// snapshot that follows.
func RunAI(localAddr, serverAddr string, driver ai.Driver, log *logging.Logger) error {
	if log == nil {
		log = logging.L()
	}
	c, err := networking.NewClient(localAddr, serverAddr, true, log)
	if err != nil {
		return fmt.Errorf("client: connect: %w", err)
	}
	defer c.Close()

	if err := sendInput(c, input.Input{}); err != nil {
		return fmt.Errorf("client: join: %w", err)
	}

	for {
		pg, err := recvPlayerGame(c)
		if err != nil {
			return fmt.Errorf("client: recv: %w", err)
		}
		in := driver.Move(pg)
		if err := sendInput(c, in); err != nil {
			return fmt.Errorf("client: send: %w", err)
		}
		if in.Quit {
			log.Info("client: quit requested by driver", logging.Int("player", int(pg.Player)))
			return nil
		}
	}
}

func sendInput(c *networking.Client, in input.Input) error {
	var buf bytes.Buffer
	if err := in.Encode(&buf); err != nil {
		return err
	}
	return c.Send(buf.Bytes())
}

func recvPlayerGame(c *networking.Client) (*simulation.PlayerGame, error) {
	body, err := c.Recv()
	if err != nil {
		return nil, err
	}
	return codec.DecodePlayerGame(bytes.NewReader(body))
}
