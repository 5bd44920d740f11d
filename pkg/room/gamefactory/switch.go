package gamefactory

import (
	"github.com/sirupsen/logrus"
	"switch-server/pkg/playable"
	"switch-server/pkg/playable/switchgame"
)

type switchFactory struct{}

func (s switchFactory) CreateGame(logger logrus.FieldLogger, playerNames []string, opts Options) (playable.Playable, error) {
	gameOpts := switchgame.DefaultOptions()
	if opts.HandSize > 0 {
		gameOpts.HandSize = opts.HandSize
	}

	return switchgame.NewGame(logger, playerNames, opts.deck(), gameOpts)
}
