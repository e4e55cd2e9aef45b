package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Exists should follow the active backend", func() {
			SetMemMapFs()
			So(Exists("/catalog.json"), ShouldBeFalse)
			So(API().WriteFile("/catalog.json", []byte("[]"), 0o644), ShouldBeNil)
			So(Exists("/catalog.json"), ShouldBeTrue)
		})
	})
}
