// bytesize.go - human-readable byte counts
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
// Copyright (C) 2022  Ali AslRousta <aslrousta@gmail.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package cache

import "strconv"

// byteSize formats a byte count with binary prefixes, e.g. "1.5 KiB".
type byteSize int64

func (x byteSize) String() string {
	if x < 1024 {
		return strconv.FormatInt(int64(x), 10) + " B"
	}
	val := float64(x)
	unit := ""
	for _, unit = range []string{"KiB", "MiB", "GiB", "TiB", "PiB"} {
		val /= 1024
		if val < 1024 {
			break
		}
	}
	return strconv.FormatFloat(val, 'f', 1, 64) + " " + unit
}
