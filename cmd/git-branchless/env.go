package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/goccy/go-yaml"
	"go.etcd.io/bbolt"

	"github.com/Spread0x/git-branchless/eventlog"
	"github.com/Spread0x/git-branchless/mergebase"
)

const defaultMainBranch = "master"

type Config struct {
	// MainBranch is the branch treated as immutable shared history.
	MainBranch string `yaml:"main-branch"`
	// DbPath overrides the location of the bbolt database.
	DbPath string `yaml:"db-path"`
}

func ParseConfigYAML(file []byte) (*Config, error) {
	result := &Config{}

	if err := yaml.Unmarshal(file, result); err != nil {
		return nil, err
	}

	return result, nil
}

// env holds what every subcommand needs: the repository, the event log, and
// the merge-base db, all rooted in .git/branchless of the repo at cwd.
type env struct {
	repo       *git.Repository
	db         *bbolt.DB
	eventLog   *eventlog.Log
	mergeBase  *mergebase.Db
	mainBranch string
}

func openEnv(c *rootCmd) (*env, error) {
	repo, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	fsStorage, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return nil, errors.New("repository storage is not on a filesystem")
	}
	branchlessDir := filepath.Join(fsStorage.Filesystem().Root(), "branchless")
	if err := os.MkdirAll(branchlessDir, 0o755); err != nil {
		return nil, err
	}

	configPath := c.configPath
	if configPath == "" {
		configPath = filepath.Join(branchlessDir, "config.yaml")
	}

	config := &Config{}
	if data, err := os.ReadFile(configPath); err == nil {
		if config, err = ParseConfigYAML(data); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	mainBranch := config.MainBranch
	if c.mainBranch != "" {
		mainBranch = c.mainBranch
	}
	if mainBranch == "" {
		mainBranch = defaultMainBranch
	}

	dbPath := config.DbPath
	if dbPath == "" {
		dbPath = filepath.Join(branchlessDir, "db.bolt")
	}

	db, err := bbolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dbPath, err)
	}

	mergeBase, err := mergebase.New(repo.Storer, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &env{
		repo:       repo,
		db:         db,
		eventLog:   eventlog.NewLog(db),
		mergeBase:  mergeBase,
		mainBranch: mainBranch,
	}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}
