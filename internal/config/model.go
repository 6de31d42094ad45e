package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/takrawm/famengine/internal/fam"
)

// supportedSchemaConstraint is the range of model.yaml schema_version
// values this build understands.
//
//nolint:gochecknoglobals // Compile-time constant, not mutated after init.
var supportedSchemaConstraint = mustConstraint(">=1.0.0, <2.0.0")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in schema constraint %q: %v", s, err))
	}
	return c
}

// Model is the fully parsed and version-gated set of model files.
type Model struct {
	SchemaVersion string
	Accounts      []fam.Account
	Periods       []fam.Period
	Rules         fam.RuleSet
}

type modelYAML struct {
	SchemaVersion string `yaml:"schema_version"`
}

type accountsYAML struct {
	Accounts []accountYAML `yaml:"accounts"`
}

type accountYAML struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	Sheet          string  `yaml:"sheet"`
	ParentID       string  `yaml:"parent_id"`
	IsCredit       bool    `yaml:"is_credit"`
	IgnoredForCF   bool    `yaml:"ignored_for_cf"`
	IsCFBaseProfit bool    `yaml:"is_cf_base_profit"`
	IsCashAccount  bool    `yaml:"is_cash_account"`
}

type periodsYAML struct {
	Periods []periodYAML `yaml:"periods"`
}

type periodYAML struct {
	ID              string `yaml:"id"`
	Year            int    `yaml:"year"`
	Month           int    `yaml:"month"`
	FiscalYear      int    `yaml:"fiscal_year"`
	IsFiscalYearEnd bool   `yaml:"is_fiscal_year_end"`
	Type            string `yaml:"type"`
	Label           string `yaml:"label"`
}

type rulesYAML struct {
	Rules []ruleYAML `yaml:"rules"`
}

type ruleYAML struct {
	ID         string        `yaml:"id"`
	Kind       string        `yaml:"kind"`
	Value      float64       `yaml:"value"`
	Rate       float64       `yaml:"rate"`
	RefAccount string        `yaml:"ref_account"`
	Formula    *formulaYAML  `yaml:"formula"`
	Flows      []flowYAML    `yaml:"flows"`
}

type flowYAML struct {
	Ref  string `yaml:"ref"`
	Sign string `yaml:"sign"`
}

// LoadModel reads model.yaml, accounts.yaml, periods.yaml and
// rules.yaml from dir. The three model files are parsed concurrently
// with golang.org/x/sync/errgroup (I/O parallelism only; the engine's
// single-threaded compute path is untouched), after model.yaml's
// schema_version has been checked against supportedSchemaConstraint.
func LoadModel(ctx context.Context, dir string) (*Model, error) {
	schemaVersion, err := loadSchemaVersion(dir)
	if err != nil {
		return nil, err
	}

	v, err := semver.NewVersion(schemaVersion)
	if err != nil {
		return nil, fmt.Errorf("parsing schema_version %q: %w", schemaVersion, err)
	}
	if !supportedSchemaConstraint.Check(v) {
		return nil, fmt.Errorf("model schema_version %q is not supported by this build (want %s)",
			schemaVersion, supportedSchemaConstraint.String())
	}

	var accounts []fam.Account
	var periods []fam.Period
	var rules fam.RuleSet

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := loadAccounts(dir)
		if err != nil {
			return err
		}
		accounts = a
		return nil
	})
	g.Go(func() error {
		p, err := loadPeriods(dir)
		if err != nil {
			return err
		}
		periods = p
		return nil
	})
	g.Go(func() error {
		r, err := loadRules(dir)
		if err != nil {
			return err
		}
		rules = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Model{
		SchemaVersion: schemaVersion,
		Accounts:      accounts,
		Periods:       periods,
		Rules:         rules,
	}, nil
}

func loadSchemaVersion(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "model.yaml"))
	if err != nil {
		return "", fmt.Errorf("reading model.yaml: %w", err)
	}
	var m modelYAML
	if err := yaml.Unmarshal(data, &m); err != nil {
		return "", fmt.Errorf("parsing model.yaml: %w", err)
	}
	if m.SchemaVersion == "" {
		return "", fmt.Errorf("model.yaml missing schema_version")
	}
	return m.SchemaVersion, nil
}

func loadAccounts(dir string) ([]fam.Account, error) {
	data, err := os.ReadFile(filepath.Join(dir, "accounts.yaml"))
	if err != nil {
		return nil, fmt.Errorf("reading accounts.yaml: %w", err)
	}
	var doc accountsYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing accounts.yaml: %w", err)
	}

	out := make([]fam.Account, 0, len(doc.Accounts))
	for _, a := range doc.Accounts {
		acct := fam.Account{
			ID:             fam.AccountId(a.ID),
			Name:           a.Name,
			IsCredit:       a.IsCredit,
			IgnoredForCF:   a.IgnoredForCF,
			IsCFBaseProfit: a.IsCFBaseProfit,
			IsCashAccount:  a.IsCashAccount,
		}
		if a.Sheet != "" {
			s := fam.SheetType(a.Sheet)
			acct.Sheet = &s
		}
		if a.ParentID != "" {
			p := fam.AccountId(a.ParentID)
			acct.ParentID = &p
		}
		out = append(out, acct)
	}
	return out, nil
}

func loadPeriods(dir string) ([]fam.Period, error) {
	data, err := os.ReadFile(filepath.Join(dir, "periods.yaml"))
	if err != nil {
		return nil, fmt.Errorf("reading periods.yaml: %w", err)
	}
	var doc periodsYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing periods.yaml: %w", err)
	}

	out := make([]fam.Period, 0, len(doc.Periods))
	for _, p := range doc.Periods {
		out = append(out, fam.Period{
			ID:              fam.PeriodId(p.ID),
			Year:            p.Year,
			Month:           p.Month,
			FiscalYear:      p.FiscalYear,
			IsFiscalYearEnd: p.IsFiscalYearEnd,
			Type:            fam.PeriodType(p.Type),
			Label:           p.Label,
		})
	}
	return out, nil
}

func loadRules(dir string) (fam.RuleSet, error) {
	data, err := os.ReadFile(filepath.Join(dir, "rules.yaml"))
	if err != nil {
		return fam.RuleSet{}, fmt.Errorf("reading rules.yaml: %w", err)
	}
	var doc rulesYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fam.RuleSet{}, fmt.Errorf("parsing rules.yaml: %w", err)
	}

	rules := fam.NewRuleSet()
	for _, r := range doc.Rules {
		rule, err := r.toRule()
		if err != nil {
			return fam.RuleSet{}, fmt.Errorf("rule %q: %w", r.ID, err)
		}
		rules.Put(fam.AccountId(r.ID), rule)
	}
	return rules, nil
}

func (r ruleYAML) toRule() (fam.Rule, error) {
	switch r.Kind {
	case "input":
		return fam.InputRule(r.Value), nil
	case "calculation":
		f, err := r.Formula.toFormula()
		if err != nil {
			return fam.Rule{}, err
		}
		return fam.CalculationRule(f), nil
	case "growth_rate":
		return fam.GrowthRateRule(r.Rate), nil
	case "percentage":
		return fam.PercentageRule(r.Rate, fam.AccountId(r.RefAccount)), nil
	case "reference":
		return fam.ReferenceRule(fam.AccountId(r.RefAccount)), nil
	case "fixed_value":
		return fam.FixedValueRule(), nil
	case "proportionate":
		return fam.ProportionateRule(fam.AccountId(r.RefAccount)), nil
	case "balance_change":
		flows := make([]fam.Flow, 0, len(r.Flows))
		for _, f := range r.Flows {
			sign := fam.Plus
			if f.Sign == string(fam.Minus) {
				sign = fam.Minus
			}
			flows = append(flows, fam.Flow{Ref: fam.AccountId(f.Ref), Sign: sign})
		}
		return fam.BalanceChangeRule(flows), nil
	default:
		return fam.Rule{}, fmt.Errorf("unknown rule kind %q", r.Kind)
	}
}
