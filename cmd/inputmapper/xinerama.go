package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgbutil/xrect"
)

// Xinerama has no output names, only numbered screens, so this backend
// imposes a naming convention: "HEAD-" followed by exactly one decimal digit.
const headNamePrefix = "HEAD-"

func parseHeadNumber(outputName string) (int, error) {
	errBadFormat := fmt.Errorf(
		"please specify the output name as %sX, where X is the screen number",
		headNamePrefix)

	if len(outputName) != len(headNamePrefix)+1 || !strings.HasPrefix(outputName, headNamePrefix) {
		return 0, errBadFormat
	}

	digit := outputName[len(headNamePrefix)]
	if digit < '0' || digit > '9' {
		return 0, errBadFormat
	}

	return int(digit - '0'), nil
}

func headGeometry(screens []xinerama.ScreenInfo, head int, outputName string) (xrect.Rect, error) {
	if len(screens) == 0 {
		return nil, fmt.Errorf("Xinerama failed to query screens")
	}

	if head >= len(screens) {
		return nil, fmt.Errorf("found %d screens, but you requested %s", len(screens), outputName)
	}

	screen := screens[head] // shorthand

	return xrect.New(
		int(screen.XOrg),
		int(screen.YOrg),
		int(screen.Width),
		int(screen.Height)), nil
}

type xineramaResolver struct {
	conn *xgb.Conn
}

func newXineramaResolver(conn *xgb.Conn) (*xineramaResolver, error) {
	if err := xinerama.Init(conn); err != nil {
		return nil, fmt.Errorf("unable to set screen mapping, Xinerama extension not found: %w", err)
	}

	return &xineramaResolver{conn: conn}, nil
}

func (r *xineramaResolver) ResolveOutput(name string) (xrect.Rect, error) {
	head, err := parseHeadNumber(name)
	if err != nil {
		return nil, err
	}

	screens, err := xinerama.QueryScreens(r.conn).Reply()
	if err != nil {
		return nil, err
	}

	return headGeometry(screens.ScreenInfo, head, name)
}
