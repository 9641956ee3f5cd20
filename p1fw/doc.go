// Package p1fw reads .p1fw firmware release packages.
//
// # Package Format
//
// A .p1fw release is a zip archive (or an unpacked directory) containing an
// info.json manifest and the firmware images it names:
//
//	{
//	    "fusion_engine": {"filename": "fusion-engine.bin"},
//	    "gnss_receiver": {"filename": "teseo.bin"}
//	}
//
// Both images must be present; a release always updates the application
// processor and GNSS receiver together, even if the user later chooses to
// flash only one of them.
//
// # Usage
//
//	pkg, err := p1fw.Open("release.p1fw")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// pkg.App and pkg.GNSS hold the raw image bytes.
//
// Open accepts either the archive itself or a directory it was unpacked
// into. Errors name the missing or malformed piece of the package.
package p1fw
