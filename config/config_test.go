package config

import (
	"os"
	"testing"
	"time"

	"github.com/anisan-cli/peel/filesystem"
	"github.com/anisan-cli/peel/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should register every defined key", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.ResolverMaxDepth), ShouldEqual, 3)
			So(viper.GetStringSlice(key.ResolverAdDomains), ShouldContain, "doubleclick")
		})

		Convey("Should read overrides from the environment", func() {
			So(os.Setenv("PEEL_RESOLVER_MAX_DEPTH", "5"), ShouldBeNil)
			defer os.Unsetenv("PEEL_RESOLVER_MAX_DEPTH")

			So(Setup(), ShouldBeNil)
			So(viper.GetInt(key.ResolverMaxDepth), ShouldEqual, 5)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("sync.arm_api"), ShouldEqual, "sync_arm_api")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field", t, func() {
		f := Default[key.SyncTimeout]

		Convey("Env should be prefixed with the application name", func() {
			So(f.Env(), ShouldEqual, "PEEL_SYNC_TIMEOUT")
		})

		Convey("MarshalJSON should expose the type name", func() {
			data, err := f.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"type":"int"`)
		})

		Convey("Seconds should convert integer keys", func() {
			So(Setup(), ShouldBeNil)
			So(Seconds(key.SyncTimeout), ShouldEqual, 8*time.Second)
		})
	})
}
