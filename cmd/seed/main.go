// Command seed posts a preset template and three judge sheets to a
// running service, for local demos and manual matrix inspection.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/drillmeet/scoresheet/internal/domain/builder"
	"github.com/drillmeet/scoresheet/internal/domain/field"
)

const (
	defaultTimeout = 10 * time.Second
	runTimeout     = time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		presetName  = flag.String("preset", "Air Force Armed Inspection", "Preset template to seed")
		competition = flag.String("competition", "demo-comp", "Competition id for the seeded events")
		school      = flag.String("school", "demo-school", "School id for the seeded events")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	client := &http.Client{Timeout: *timeout}

	if err := run(ctx, client, *baseURL, *presetName, *competition, *school); err != nil {
		os.Stderr.WriteString("seed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context, client *http.Client, baseURL, presetName, competition, school string) error {
	preset, ok := builder.Preset(presetName)
	if !ok {
		return fmt.Errorf("unknown preset %q (choose from %v)", presetName, builder.PresetNames())
	}

	tplID, err := postTemplate(ctx, client, baseURL, presetName, preset)
	if err != nil {
		return err
	}
	fmt.Println("seeded template", tplID)

	for judge := 1; judge <= 3; judge++ {
		eventID, total, err := postSheet(ctx, client, baseURL, tplID, competition, school, judge, preset)
		if err != nil {
			return err
		}
		fmt.Printf("seeded event %s (Judge %d, total %.1f)\n", eventID, judge, total)
	}

	fmt.Printf("matrix: %s/matrix?competition=%s&school=%s\n", baseURL, competition, school)
	return nil
}

func postTemplate(ctx context.Context, client *http.Client, baseURL, name string, preset []field.Field) (string, error) {
	criteria, err := field.MarshalList(preset)
	if err != nil {
		return "", err
	}
	body := map[string]any{
		"name":     name,
		"event":    field.Slug(name),
		"criteria": json.RawMessage(criteria),
	}
	var tpl struct {
		ID string `json:"id"`
	}
	if err := postJSON(ctx, client, baseURL+"/templates", body, &tpl); err != nil {
		return "", fmt.Errorf("post template: %w", err)
	}
	return tpl.ID, nil
}

func postSheet(ctx context.Context, client *http.Client, baseURL, tplID, competition, school string, judge int, preset []field.Field) (string, float64, error) {
	scores := make(map[string]any)
	for i, f := range preset {
		switch f.Kind {
		case field.KindScoringScale:
			// Spread judges a little so the matrix shows variance.
			scores[f.ID] = f.PointValue - float64(judge+i)
		case field.KindNumber:
			scores[f.ID] = f.MaxValue - float64(judge)
		case field.KindPenalty:
			if judge == 1 && f.PenaltyType == field.PenaltyPoints {
				scores[f.ID] = 1
			}
		case field.KindText, field.KindDropdown, field.KindSectionHeader,
			field.KindLabel, field.KindPenaltyCheckbox, field.KindCalculated:
		}
	}

	body := map[string]any{
		"competition_id": competition,
		"school_id":      school,
		"event":          "armed_inspection",
		"cadet_ids":      []string{"cadet-1"},
		"score_sheet": map[string]any{
			"template_id":  tplID,
			"judge_number": fmt.Sprintf("Judge %d", judge),
			"scores":       scores,
		},
	}
	var created struct {
		ID    string  `json:"id"`
		Total float64 `json:"total_points"`
	}
	if err := postJSON(ctx, client, baseURL+"/events", body, &created); err != nil {
		return "", 0, fmt.Errorf("post event: %w", err)
	}
	return created.ID, created.Total, nil
}

func postJSON(ctx context.Context, client *http.Client, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
