// Package port loads the UN/LOCODE seaport registry from CSV and exposes
// the filtered, deduplicated port list used by the coordinate snapper and
// graph builder.
package port

import (
	"encoding/csv"
	"io"
	"os"

	"sealane/pkg/coordinate"
	"sealane/pkg/logger"
)

// Port is a single seaport record from the UN/LOCODE registry.
type Port struct {
	UNLOCODE    string
	Name        string
	Country     string
	Subdivision string
	Function    string
	Status      string
	Lat         float64
	Lon         float64
}

// IsMajorPort reports whether the port's function code carries at least
// three non-dash characters, the UN/LOCODE convention for a port with
// more than one recorded transport mode or role.
func (p Port) IsMajorPort() bool {
	nonDash := 0
	for _, c := range p.Function {
		if c != '-' {
			nonDash++
		}
	}
	return nonDash >= 3
}

// HasRail reports whether the port's function code marks rail terminal
// access (position 2, index 1).
func (p Port) HasRail() bool {
	return len(p.Function) > 1 && p.Function[1] == '2'
}

// HasRoad reports whether the port's function code marks road terminal
// access (position 3, index 2).
func (p Port) HasRoad() bool {
	return len(p.Function) > 2 && p.Function[2] == '3'
}

// HasAirport reports whether the port's function code marks nearby
// airport access (position 4, index 3).
func (p Port) HasAirport() bool {
	return len(p.Function) > 3 && p.Function[3] == '4'
}

const (
	colChangeIndicator = 0
	colCountry         = 1
	colLocation        = 2
	colName            = 3
	colNameASCII       = 4
	colSubdivision     = 5
	colFunction        = 6
	colStatus          = 7
	colCoordinates     = 10

	minFields = 11
)

// validStatus is the set of UN/LOCODE status codes accepted for routing.
var validStatus = map[string]bool{
	"AA": true,
	"AC": true,
	"AF": true,
	"AI": true,
	"AS": true,
	"RL": true,
}

// LoadSeaports reads zero or more UN/LOCODE CSV files and returns every
// port satisfying the seaport filter predicate, in first-seen order,
// deduplicated by UNLOCODE. A missing file is logged and skipped; it is
// never an error for the overall load.
func LoadSeaports(paths ...string) ([]Port, error) {
	seen := make(map[string]bool)
	var ports []Port

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			logger.Log.Warn("port registry file unavailable, skipping", "path", path, "error", err)
			continue
		}

		loaded, err := loadFile(f, path)
		_ = f.Close()
		if err != nil {
			logger.Log.Warn("port registry file unreadable, skipping", "path", path, "error", err)
			continue
		}

		for _, p := range loaded {
			code := p.UNLOCODE
			if seen[code] {
				continue
			}
			seen[code] = true
			ports = append(ports, p)
		}
	}

	return ports, nil
}

func loadFile(r io.Reader, path string) ([]Port, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var ports []Port
	lineNo := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			logger.Log.Debug("malformed CSV line, skipping", "path", path, "line", lineNo, "error", err)
			continue
		}

		p, ok := toPort(record)
		if !ok {
			continue
		}
		ports = append(ports, p)
	}

	return ports, nil
}

// toPort applies the seaport filter predicate to one CSV record and, if it
// passes, decodes it into a Port.
func toPort(record []string) (Port, bool) {
	if len(record) < minFields {
		return Port{}, false
	}

	if record[colChangeIndicator] == "X" {
		return Port{}, false
	}
	if record[colLocation] == "" {
		return Port{}, false
	}
	fn := record[colFunction]
	if fn == "" || fn[0] != '1' {
		return Port{}, false
	}
	if !validStatus[record[colStatus]] {
		return Port{}, false
	}

	pt, ok := coordinate.Parse(record[colCoordinates])
	if !ok {
		return Port{}, false
	}

	name := record[colNameASCII]
	if name == "" {
		name = record[colName]
	}

	return Port{
		UNLOCODE:    record[colCountry] + record[colLocation],
		Name:        name,
		Country:     record[colCountry],
		Subdivision: record[colSubdivision],
		Function:    fn,
		Status:      record[colStatus],
		Lat:         pt.Lat,
		Lon:         pt.Lon,
	}, true
}
