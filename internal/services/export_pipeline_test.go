package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/mtga-ko/internal/models"
)

func TestOutputPathFor(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		snapshot string
		total    int
		expected string
	}{
		{"single snapshot", "cards_data_for_api.json", "in/Raw_CardDatabase_abc.mtga", 1, "cards_data_for_api.json"},
		{"several snapshots", "out/cards.json", "in/Raw_CardDatabase_abc.mtga", 2, "out/cards_abc.json"},
		{"output without extension", "cards", "Raw_CardDatabase_x1.mtga", 3, "cards_x1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPathFor(tt.output, tt.snapshot, tt.total); got != tt.expected {
				t.Errorf("OutputPathFor() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExportPipeline_NoSnapshots(t *testing.T) {
	pipeline := NewExportPipeline(ExportOptions{InputDir: t.TempDir()})
	if _, err := pipeline.Run(context.Background()); !errors.Is(err, ErrNoSnapshots) {
		t.Errorf("Run() error = %v, want ErrNoSnapshots", err)
	}
}

func createSnapshot(t *testing.T, path string, statements ...string) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to run %q: %v", stmt, err)
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.Close()
}

func writeTestSnapshots(t *testing.T, dir string) {
	t.Helper()

	createSnapshot(t, filepath.Join(dir, "Raw_ClientLocalization_test.mtga"),
		`CREATE TABLE loc (Key TEXT, enUS TEXT, koKR TEXT)`,
		`INSERT INTO loc VALUES ('AbilityHanger/Keyword/Flying_Body', 'Flying body', '이 생물은 비행이나 도달 능력이 없는 생물에게 방어될 수 없다.')`,
		`INSERT INTO loc VALUES ('AbilityHanger/Keyword/Flying_Title', 'Flying', '비행')`,
	)

	createSnapshot(t, filepath.Join(dir, "Raw_CardDatabase_test.mtga"),
		`CREATE TABLE Cards (GrpId INTEGER, TitleId INTEGER, TypeTextId INTEGER, SubtypeTextId INTEGER,
			Order_CMCWithXLast INTEGER, Power TEXT, Toughness TEXT, FlavorTextId INTEGER, AbilityIds TEXT,
			Subtypes TEXT, Order_MythicToCommon INTEGER, Colors TEXT)`,
		`CREATE TABLE Localizations_enUS (LocId INTEGER, Formatted INTEGER, Loc TEXT)`,
		`CREATE TABLE Localizations_koKR (LocId INTEGER, Formatted INTEGER, Loc TEXT)`,
		`CREATE TABLE Abilities (Id INTEGER, TextId INTEGER, LoyaltyCost TEXT)`,
		`INSERT INTO Cards VALUES (5, 10, 20, 30, 0, NULL, NULL, 1, NULL, NULL, 3, NULL)`,
		`INSERT INTO Cards VALUES (100, 10, 20, 30, 2, '2', '2', 1, '500:40', '', 2, '2')`,
		`INSERT INTO Cards VALUES (101, 11, 21, 0, 1, NULL, NULL, 50, '501:41', NULL, 0, '1,3')`,
		`INSERT INTO Localizations_enUS VALUES (10, 0, 'Wind Drake')`,
		`INSERT INTO Localizations_enUS VALUES (11, 0, 'Vindicate')`,
		`INSERT INTO Localizations_enUS VALUES (40, 0, 'Flying')`,
		`INSERT INTO Localizations_enUS VALUES (41, 0, 'Destroy target permanent.')`,
		`INSERT INTO Localizations_koKR VALUES (10, 0, '#바람 드레이크 미검수')`,
		`INSERT INTO Localizations_koKR VALUES (10, 1, '바람 드레이크')`,
		`INSERT INTO Localizations_koKR VALUES (11, 2, '정당화 미검수')`,
		`INSERT INTO Localizations_koKR VALUES (11, 3, '정당화')`,
		`INSERT INTO Localizations_koKR VALUES (20, 0, '생물')`,
		`INSERT INTO Localizations_koKR VALUES (21, 0, '집중마법')`,
		`INSERT INTO Localizations_koKR VALUES (30, 0, '드레이크')`,
		`INSERT INTO Localizations_koKR VALUES (40, 0, '비행')`,
		`INSERT INTO Localizations_koKR VALUES (41, 0, '지속물을 목표로 정한다. <i>그것</i>을 파괴한다.')`,
		`INSERT INTO Localizations_koKR VALUES (50, 0, '#정의는 {oW}늦지 않는다.')`,
		`INSERT INTO Abilities VALUES (500, 40, NULL)`,
		`INSERT INTO Abilities VALUES (501, 41, NULL)`,
	)
}

func TestExportPipeline_Run(t *testing.T) {
	dir := t.TempDir()
	writeTestSnapshots(t, dir)
	output := filepath.Join(dir, "out.json")

	var traces []AnnotationTrace
	pipeline := NewExportPipeline(ExportOptions{
		InputDir: dir,
		Output:   output,
		Tracer: AnnotationTracerFunc(func(trace AnnotationTrace) {
			traces = append(traces, trace)
		}),
	})

	results, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 1 || results[0].Path != output {
		t.Fatalf("Run() results = %+v", results)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var records []models.CardRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want two cards and the ping record", len(records))
	}

	drake := records[0]
	if drake.SearchValue != "Wind Drake" || drake.CardName != "바람 드레이크" {
		t.Errorf("unreviewed rows should be deleted before lookup, got %+v", drake)
	}
	if drake.Rarity != models.RarityUncommon || drake.Color != models.ColorBlue {
		t.Errorf("drake rarity/color = %s/%s", drake.Rarity, drake.Color)
	}
	if drake.ManaValue == nil || *drake.ManaValue != 2 || drake.Power != "2" || drake.SubType != "드레이크" {
		t.Errorf("drake stats = %+v", drake)
	}
	if drake.FlavorText != "" {
		t.Errorf("drake flavor = %q, want none", drake.FlavorText)
	}
	if drake.Text != "비행" {
		t.Errorf("drake text = %q", drake.Text)
	}
	if drake.AnnotatedText != "비행 [sup][이 생물은 비행이나 도달 능력이 없는 생물에게 방어될 수 없다.][/sup]" {
		t.Errorf("drake annotated text = %q", drake.AnnotatedText)
	}

	vindicate := records[1]
	if vindicate.CardName != "정당화" || vindicate.Color != models.ColorMulticolor || vindicate.Rarity != models.RarityMythic {
		t.Errorf("vindicate = %+v", vindicate)
	}
	if vindicate.Text != "지속물을 목표로 정한다. [<i>]그것[</i>]을 파괴한다." {
		t.Errorf("vindicate text = %q", vindicate.Text)
	}
	if vindicate.FlavorText != "" {
		t.Errorf("unreviewed flavor text should be deleted, got %q", vindicate.FlavorText)
	}

	if records[2] != models.PingRecord() {
		t.Errorf("last record = %+v, want ping", records[2])
	}

	if len(traces) != 2 || traces[0].Decision != DecisionTitlePair || traces[1].Decision != DecisionNoMatch {
		t.Errorf("traces = %+v", traces)
	}
}

func TestExportPipeline_SkipCleanup(t *testing.T) {
	dir := t.TempDir()
	writeTestSnapshots(t, dir)
	output := filepath.Join(dir, "out.json")

	pipeline := NewExportPipeline(ExportOptions{InputDir: dir, Output: output, SkipCleanup: true})
	if _, err := pipeline.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var records []models.CardRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatal(err)
	}
	if records[0].CardName != "#바람 드레이크 미검수" {
		t.Errorf("without cleanup the lowest Formatted row wins, got %q", records[0].CardName)
	}
}

func TestExportPipeline_LoadDictionaryWithoutLocalization(t *testing.T) {
	pipeline := NewExportPipeline(ExportOptions{InputDir: t.TempDir()})
	if dict := pipeline.LoadDictionary(); dict.Len() != 0 {
		t.Errorf("LoadDictionary() = %d cores, want none", dict.Len())
	}
}
