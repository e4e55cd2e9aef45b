package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/anisan-cli/peel/filesystem"
	"github.com/anisan-cli/peel/key"
	"github.com/anisan-cli/peel/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Log Setup", t, func() {
		Convey("Should stay silent when writing is disabled", func() {
			viper.Set(key.LogsWrite, false)
			So(Setup(), ShouldBeNil)
			So(enabled, ShouldBeFalse)
		})

		Convey("Should write component fields to the daily file", func() {
			viper.Set(key.LogsWrite, true)
			viper.Set(key.LogsLevel, "debug")
			defer viper.Set(key.LogsWrite, false)

			So(Setup(), ShouldBeNil)
			For("resolver").With("hop", 2).Debugf("peeling %s", "https://example.com")

			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			data := string(lo.Must(filesystem.API().ReadFile(path)))
			So(data, ShouldContainSubstring, "component=resolver")
			So(data, ShouldContainSubstring, "hop=2")
			So(data, ShouldContainSubstring, "peeling https://example.com")
		})
	})
}
