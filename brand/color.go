// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package brand

import (
	"fmt"
	"strconv"
	"strings"
)

type RGB struct {
	R, G, B uint8
}

// ParseHex accepts #RRGGBB, RRGGBB and the #RGB shorthand.
func ParseHex(hex string) (RGB, error) {
	c := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(c) == 3 {
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	}
	if len(c) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", hex)
	}

	v, err := strconv.ParseUint(c, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q", hex)
	}

	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
