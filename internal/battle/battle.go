// Package battle turns judgment outcomes into the health and attack gauge
// model of a stage.
package battle

import (
	"math/rand"
	"time"

	"git.lost.host/meutraa/chordbattle/internal/config"
	"git.lost.host/meutraa/chordbattle/internal/game"
	"go.uber.org/zap"
)

type Status int

const (
	Fighting Status = iota
	Cleared
	Defeated
)

func (s Status) String() string {
	switch s {
	case Cleared:
		return "cleared"
	case Defeated:
		return "defeated"
	}
	return "fighting"
}

// EnemyAttack is the damage a full enemy gauge deals to the player.
const EnemyAttack = 1

type Battle struct {
	stage  config.Stage
	logger *zap.Logger

	playerHP int
	enemyHP  int
	enemy    int // Index of the current enemy
	gauge    time.Duration
	status   Status
	loop     int
}

// State is a read only view for display.
type State struct {
	Status     Status
	PlayerHP   int
	MaxHP      int
	Enemy      int
	EnemyCount int
	EnemyHP    int
	MaxEnemyHP int
	Gauge      float64 // Fraction of the enemy attack gauge, 0 when disabled
	Loop       int
}

func New(stage config.Stage, logger *zap.Logger) *Battle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Battle{
		stage:    stage,
		logger:   logger.With(zap.String("stage", stage.Number)),
		playerHP: stage.MaxHP,
		enemyHP:  stage.EnemyHP,
	}
}

func (b *Battle) gaugeFull() time.Duration {
	return time.Duration(b.stage.EnemyGaugeSeconds * float64(time.Second))
}

func (b *Battle) Hit(o game.Outcome) {
	if b.status != Fighting {
		return
	}
	b.enemyHP -= o.Amount
	b.gauge = 0
	b.logger.Debug("enemy damaged", zap.Int("enemy", b.enemy), zap.Int("amount", o.Amount), zap.Int("hp", b.enemyHP))
	if b.enemyHP > 0 {
		return
	}

	b.enemy++
	if b.enemy >= b.stage.EnemyCount {
		b.enemyHP = 0
		b.status = Cleared
		b.logger.Info("stage cleared", zap.Int("playerHP", b.playerHP))
		return
	}
	b.enemyHP = b.stage.EnemyHP
	b.logger.Debug("next enemy", zap.Int("enemy", b.enemy))
}

func (b *Battle) Miss(o game.Outcome) {
	b.damagePlayer(o.Amount, "missed note")
}

func (b *Battle) Loop(loop int) {
	b.loop = loop
}

func (b *Battle) damagePlayer(amount int, reason string) {
	if b.status != Fighting {
		return
	}
	b.playerHP -= amount
	b.logger.Debug("player damaged", zap.String("reason", reason), zap.Int("amount", amount), zap.Int("hp", b.playerHP))
	if b.playerHP <= 0 {
		b.playerHP = 0
		b.status = Defeated
		b.logger.Info("stage failed", zap.Int("enemy", b.enemy))
	}
}

// Advance fills the enemy attack gauge by dt and reports how many attacks
// landed. A stage with no gauge never attacks.
func (b *Battle) Advance(dt time.Duration) int {
	full := b.gaugeFull()
	if full <= 0 || dt <= 0 || b.status != Fighting {
		return 0
	}
	b.gauge += dt
	attacks := 0
	for b.gauge >= full && b.status == Fighting {
		b.gauge -= full
		attacks++
		b.damagePlayer(EnemyAttack, "enemy attack")
	}
	return attacks
}

func (b *Battle) Status() Status {
	return b.status
}

func (b *Battle) Done() bool {
	return b.status != Fighting
}

func (b *Battle) State() State {
	s := State{
		Status:     b.status,
		PlayerHP:   b.playerHP,
		MaxHP:      b.stage.MaxHP,
		Enemy:      b.enemy,
		EnemyCount: b.stage.EnemyCount,
		EnemyHP:    b.enemyHP,
		MaxEnemyHP: b.stage.EnemyHP,
		Loop:       b.loop,
	}
	if full := b.gaugeFull(); full > 0 {
		s.Gauge = float64(b.gauge) / float64(full)
	}
	return s
}

// Damage returns an amount function drawing hit damage uniformly from the
// stage's damage range. Misses always cost one point.
func Damage(stage config.Stage, rng *rand.Rand) func(game.Outcome) int {
	return func(o game.Outcome) int {
		if o.Kind != game.Hit {
			return 1
		}
		return stage.MinDamage + rng.Intn(stage.MaxDamage-stage.MinDamage+1)
	}
}
