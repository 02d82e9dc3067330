package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/audit-iq-labs/auditiq/internal/api"
	"github.com/audit-iq-labs/auditiq/internal/auth"
	"github.com/audit-iq-labs/auditiq/internal/config"
)

// Smoke test against a live backend: walks the read-only endpoints and
// prints what it finds. Needs AUDITIQ_TOKEN (or a config file).
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = config.DefaultAPIBaseURL
	}

	tokens, err := auth.TokenSource(cfg)
	if err != nil {
		log.Fatal(err)
	}

	client := api.New(cfg.APIBaseURL, tokens)
	ctx := context.Background()

	ent, err := client.GetEntitlements(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Plan: %s (%s)\n", ent.PlanName, ent.PlanStatus)
	for feature, quota := range ent.Quota {
		limit := "unlimited"
		if quota.Limit != nil {
			limit = fmt.Sprintf("%d", *quota.Limit)
		}
		fmt.Printf("  %s: %d/%s used\n", feature, quota.Used, limit)
	}

	projects, err := client.ListProjects(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nProjects (%d):\n", len(projects))
	for _, p := range projects {
		fmt.Printf("  %s: %s [%s]\n", p.ID, p.Name, p.Regulation)
	}

	if len(projects) == 0 {
		return
	}

	project := projects[0]
	if id := os.Getenv("AUDITIQ_SMOKE_PROJECT"); id != "" {
		for _, p := range projects {
			if p.ID == id {
				project = p
				break
			}
		}
	}
	fmt.Printf("\nUsing project: %s (%s)\n\n", project.Name, project.ID)

	summary, err := client.GetChecklistSummary(ctx, project.ID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Checklist: %d items, %.1f%% complete\n", summary.TotalItems, summary.CompletionPercent)
	for status, count := range summary.ByStatus {
		fmt.Printf("  %s: %d\n", status, count)
	}

	quality, err := client.GetProjectQuality(ctx, project.ID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Quality: evidence %.0f%%, %d overdue, %d high-risk gaps, risk score %.0f\n",
		quality.Summary.EvidenceCoveragePercent, quality.Summary.OverdueCount,
		quality.Summary.HighRiskGaps, quality.Summary.OverallRiskScore)
	for _, gap := range quality.Gaps {
		fmt.Printf("  gap [%s] %s: %s\n", gap.Reference, gap.ShortLabel, gap.Reason)
	}

	items, err := client.GetChecklist(ctx, project.ID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nItems (%d):\n", len(items))
	for _, item := range items {
		due := item.DueDate
		if due == "" {
			due = "-"
		}
		fmt.Printf("  [%s] %-14s due=%-12s evidence=%d %s\n",
			item.Reference, item.Status, due, item.EvidenceCount, item.ShortLabel)
	}

	// Evidence of the first item that has any
	for _, item := range items {
		if item.EvidenceCount == 0 {
			continue
		}
		records, err := client.ListEvidence(ctx, project.ID, item.ObligationID)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("\nEvidence for %s (%d records):\n", item.ObligationID, len(records))
		for _, r := range records {
			fmt.Printf("  %s: %s [%s]\n", r.ID, r.Title, r.FileType)
		}
		break
	}

	docs, err := client.GetProjectDocuments(ctx, project.ID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nDocuments (%d):\n", len(docs))
	for _, d := range docs {
		analyzed := "not analyzed"
		if d.AnalyzedAt != "" {
			analyzed = "analyzed " + d.AnalyzedAt
		}
		fmt.Printf("  %s: %s (%s)\n", d.ID, d.Filename, analyzed)
	}

	activity, err := client.GetProjectActivity(ctx, project.ID, 10)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nRecent activity (%d):\n", len(activity))
	for _, a := range activity {
		fmt.Printf("  %s %s %s\n", a.CreatedAt, a.Actor, a.Action)
	}
}
