package port

import (
	"os"
	"path/filepath"
	"testing"

	"sealane/pkg/logger"
)

func init() {
	logger.Init("error")
}

const sampleCSV = "" +
	",NL,RTM,Rotterdam,Rotterdam,,1234,AA,0101,,5155N 00430E\n" +
	",SG,SIN,Singapore,Singapore,,1---,AA,0101,,0117N 10351E\n" +
	"X,US,LAX,Los Angeles,Los Angeles,,1---,AA,0101,,3356N 11824W\n" +
	",EG,ALY,Alexandria,Alexandria,,2---,AA,0101,,3112N 02954E\n" +
	",EG,SUZ,Suez,Suez,,1---,ZZ,0101,,2958N 03233E\n" +
	",FR,LHV,\"Le Havre, Port\",Le Havre,,1---,AA,0101,,4930N 00006E\n" +
	",DE,HAM,Hamburg,,,1---,AA,0101,,\n" +
	",JP,TYO,Tokyo,Tokyo,,1---,AA,0101,,9999N 99999E\n" +
	"too,few,fields\n"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadSeaports_FiltersAndDedups(t *testing.T) {
	path := writeTemp(t, "unlocode.csv", sampleCSV)

	ports, err := LoadSeaports(path)
	if err != nil {
		t.Fatalf("LoadSeaports: %v", err)
	}

	want := map[string]bool{"NLRTM": true, "SGSIN": true, "FRLHV": true}
	if len(ports) != len(want) {
		t.Fatalf("got %d ports, want %d: %+v", len(ports), len(want), ports)
	}
	for _, p := range ports {
		if !want[p.UNLOCODE] {
			t.Errorf("unexpected port %q passed filter", p.UNLOCODE)
		}
	}
}

func TestLoadSeaports_NameFallback(t *testing.T) {
	csvContent := ",NL,RTM,Rotterdam (name),,,1234,AA,0101,,5155N 00430E\n"
	path := writeTemp(t, "fallback.csv", csvContent)

	ports, err := LoadSeaports(path)
	if err != nil {
		t.Fatalf("LoadSeaports: %v", err)
	}
	if len(ports) != 1 {
		t.Fatalf("got %d ports, want 1", len(ports))
	}
	if ports[0].Name != "Rotterdam (name)" {
		t.Errorf("Name = %q, want fallback to column 3", ports[0].Name)
	}
}

func TestLoadSeaports_DedupAcrossFiles(t *testing.T) {
	line := ",NL,RTM,Rotterdam,Rotterdam,,1234,AA,0101,,5155N 00430E\n"
	a := writeTemp(t, "a.csv", line)
	b := writeTemp(t, "b.csv", line)

	ports, err := LoadSeaports(a, b)
	if err != nil {
		t.Fatalf("LoadSeaports: %v", err)
	}
	if len(ports) != 1 {
		t.Fatalf("got %d ports across duplicate files, want 1", len(ports))
	}
}

func TestLoadSeaports_MissingFileSkipped(t *testing.T) {
	ports, err := LoadSeaports("/nonexistent/path/unlocode.csv")
	if err != nil {
		t.Fatalf("LoadSeaports should not fail on missing file: %v", err)
	}
	if len(ports) != 0 {
		t.Fatalf("got %d ports from missing file, want 0", len(ports))
	}
}

func TestLoadSeaports_NoPaths(t *testing.T) {
	ports, err := LoadSeaports()
	if err != nil {
		t.Fatalf("LoadSeaports: %v", err)
	}
	if ports != nil {
		t.Fatalf("got %v, want nil", ports)
	}
}

func TestToPort_QuotedFieldWithComma(t *testing.T) {
	path := writeTemp(t, "quoted.csv", ",FR,LHV,\"Le Havre, Port\",Le Havre,,1---,AA,0101,,4930N 00006E\n")
	ports, err := LoadSeaports(path)
	if err != nil {
		t.Fatalf("LoadSeaports: %v", err)
	}
	if len(ports) != 1 {
		t.Fatalf("got %d ports, want 1", len(ports))
	}
	if ports[0].Name != "Le Havre" {
		t.Errorf("Name = %q, want ASCII column", ports[0].Name)
	}
}

func TestLoadSeaports_PopulatesFunctionDerivedFields(t *testing.T) {
	path := writeTemp(t, "unlocode.csv", sampleCSV)
	ports, err := LoadSeaports(path)
	if err != nil {
		t.Fatalf("LoadSeaports: %v", err)
	}

	var rtm Port
	for _, p := range ports {
		if p.UNLOCODE == "NLRTM" {
			rtm = p
		}
	}
	if rtm.Function != "1234" {
		t.Fatalf("NLRTM Function = %q, want 1234", rtm.Function)
	}
	if rtm.Status != "AA" {
		t.Errorf("NLRTM Status = %q, want AA", rtm.Status)
	}
}

func TestPort_IsMajorPort(t *testing.T) {
	tests := []struct {
		function string
		want     bool
	}{
		{"1234----", true},
		{"1---2---", false},
		{"1-3-----", false},
		{"1-34----", true},
		{"1---", false},
		{"1234", true},
	}
	for _, tt := range tests {
		p := Port{Function: tt.function}
		if got := p.IsMajorPort(); got != tt.want {
			t.Errorf("IsMajorPort(%q) = %v, want %v", tt.function, got, tt.want)
		}
	}
}

func TestPort_HasRail(t *testing.T) {
	tests := []struct {
		function string
		want     bool
	}{
		{"12------", true},
		{"1-------", false},
		{"13------", false},
		{"1", false},
	}
	for _, tt := range tests {
		p := Port{Function: tt.function}
		if got := p.HasRail(); got != tt.want {
			t.Errorf("HasRail(%q) = %v, want %v", tt.function, got, tt.want)
		}
	}
}

func TestPort_HasRoad(t *testing.T) {
	tests := []struct {
		function string
		want     bool
	}{
		{"1-3-----", true},
		{"1-------", false},
		{"1-4-----", false},
		{"1-", false},
	}
	for _, tt := range tests {
		p := Port{Function: tt.function}
		if got := p.HasRoad(); got != tt.want {
			t.Errorf("HasRoad(%q) = %v, want %v", tt.function, got, tt.want)
		}
	}
}

func TestPort_HasAirport(t *testing.T) {
	tests := []struct {
		function string
		want     bool
	}{
		{"1--4----", true},
		{"1-------", false},
		{"1--3----", false},
		{"1--", false},
	}
	for _, tt := range tests {
		p := Port{Function: tt.function}
		if got := p.HasAirport(); got != tt.want {
			t.Errorf("HasAirport(%q) = %v, want %v", tt.function, got, tt.want)
		}
	}
}
