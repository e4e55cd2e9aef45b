package cmd

import (
	"path/filepath"
	"testing"

	"github.com/anisan-cli/peel/filesystem"
	"github.com/anisan-cli/peel/key"
	"github.com/anisan-cli/peel/where"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseValue(t *testing.T) {
	Convey("Given raw command line values", t, func() {
		Convey("Integers are parsed", func() {
			v, err := parseValue(key.ResolverMaxDepth, []string{"5"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 5)

			_, err = parseValue(key.ResolverMaxDepth, []string{"five"})
			So(err, ShouldNotBeNil)
		})

		Convey("Booleans are parsed", func() {
			v, err := parseValue(key.ResolverValidate, []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)
		})

		Convey("Lists accept commas and repeated values", func() {
			v, err := parseValue(key.ResolverAdDomains, []string{"doubleclick, adservice", "popads"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"doubleclick", "adservice", "popads"})
		})

		Convey("Strings are kept as is", func() {
			v, err := parseValue(key.CatalogURL, []string{"https://catalog.example/titles.json"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "https://catalog.example/titles.json")
		})
	})
}

func TestScriptPath(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		t.Setenv(where.EnvConfigPath, "/peel")
		Reset(filesystem.SetOsFs)

		Convey("An existing path is used directly", func() {
			So(filesystem.API().WriteFile("/tmp/site.lua", []byte("function Streams() return {} end"), 0o644), ShouldBeNil)
			So(scriptPath("/tmp/site.lua"), ShouldEqual, "/tmp/site.lua")
		})

		Convey("A name is looked up in the scripts directory", func() {
			So(scriptPath("site"), ShouldEqual, filepath.Join("/peel", "scripts", "site.lua"))
			So(scriptPath("site.lua"), ShouldEqual, filepath.Join("/peel", "scripts", "site.lua"))
		})

		Convey("Installed scripts are listed without extension", func() {
			dir := where.Scripts()
			So(filesystem.API().WriteFile(filepath.Join(dir, "a.lua"), nil, 0o644), ShouldBeNil)
			So(filesystem.API().WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644), ShouldBeNil)
			So(installedScripts(), ShouldResemble, []string{"a"})
		})
	})
}
