package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no env overrides", t, func() {
		cfg, err := Load(context.Background())

		Convey("Then the defaults come back", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8000")
			So(cfg.Store, ShouldEqual, StoreMemory)
			So(cfg.AwardMin, ShouldEqual, 1)
			So(cfg.AwardMax, ShouldEqual, 10)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RANKING_ADDR", ":9999")
	t.Setenv("RANKING_AWARD_MAX", "1000")
	t.Setenv("RANKING_AWARD_MIN", "100")
	t.Setenv("RANKING_LOG_LEVEL", "debug")

	Convey("Given env overrides", t, func() {
		cfg, err := Load(context.Background())

		Convey("Then env wins over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9999")
			So(cfg.AwardMin, ShouldEqual, 100)
			So(cfg.AwardMax, ShouldEqual, 1000)
			So(cfg.LogLevel, ShouldEqual, "debug")
		})
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("addr: \":7070\"\nstore: sqlite\nsqlite_path: /tmp/test-ranking.db\n")
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RANKING_CONFIG", path)

	Convey("Given a YAML config file", t, func() {
		cfg, err := Load(context.Background())

		Convey("Then file values layer over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.Store, ShouldEqual, StoreSQLite)
			So(cfg.SQLitePath, ShouldEqual, "/tmp/test-ranking.db")
			So(cfg.AwardMax, ShouldEqual, 10)
		})
	})
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RANKING_CONFIG", path)
	t.Setenv("RANKING_ADDR", ":6060")

	Convey("Given both a file and an env override", t, func() {
		cfg, err := Load(context.Background())

		Convey("Then env takes precedence", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
		})
	})
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("RANKING_STORE", "mongodb")

	Convey("Given an invalid env override", t, func() {
		_, err := Load(context.Background())

		Convey("Then Load rejects it", func() {
			So(err, ShouldWrap, ErrInvalidConfig)
		})
	})
}
