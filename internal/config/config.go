package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env-default:"9091"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host    string        `yaml:"host" env-default:"localhost"`
	Port    string        `yaml:"port" env-default:"6379"`
	GameTTL time.Duration `yaml:"game-ttl" env-default:"24h"`
}

// Game holds the defaults for games created without explicit settings.
type Game struct {
	BoardSide  int    `yaml:"board-side" env-default:"3"`
	FirstMark  string `yaml:"first-mark" env-default:"X"`
	FirstRole  string `yaml:"first-role" env-default:"human"`
	SecondRole string `yaml:"second-role" env-default:"minimax-hard"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if _, err := config.Game.Settings(); err != nil {
		panic(fmt.Errorf("invalid game defaults: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Game) Settings() (entity.Settings, error) {
	mark, err := entity.ParseMark(that.FirstMark)
	if err != nil {
		return entity.Settings{}, err
	}

	first, err := entity.ParseRole(that.FirstRole)
	if err != nil {
		return entity.Settings{}, err
	}

	second, err := entity.ParseRole(that.SecondRole)
	if err != nil {
		return entity.Settings{}, err
	}

	settings := entity.Settings{
		Side:       that.BoardSide,
		FirstMark:  mark,
		FirstRole:  first,
		SecondRole: second,
	}

	if err = settings.Validate(); err != nil {
		return entity.Settings{}, err
	}

	return settings, nil
}
