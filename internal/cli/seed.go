package cli

import (
	"context"
	_ "embed"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/tbourn/turret-landing/internal/domain"
	"github.com/tbourn/turret-landing/internal/repo"
)

//go:embed seeds.yaml
var seedsYAML []byte

type seedFile struct {
	Site struct {
		Features            []seedFeature     `yaml:"features"`
		SpecificationGroups []seedSpecGroup   `yaml:"specification_groups"`
		DocumentCategories  []seedDocCategory `yaml:"document_categories"`
	} `yaml:"site"`
	Software struct {
		Platform   seedPlatform    `yaml:"platform"`
		Modules    []seedModule    `yaml:"modules"`
		Interfaces []seedInterface `yaml:"interfaces"`
		Plans      []seedPlan      `yaml:"plans"`
	} `yaml:"software"`
	Branding struct {
		SiteTitle       string `yaml:"site_title"`
		SiteDescription string `yaml:"site_description"`
		HeroTitle       string `yaml:"hero_title"`
	} `yaml:"branding"`
}

type seedFeature struct {
	Title       string `yaml:"title"`
	Icon        string `yaml:"icon"`
	Description string `yaml:"description"`
	Order       int    `yaml:"order"`
}

type seedSpec struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	Order int    `yaml:"order"`
}

type seedSpecGroup struct {
	Name           string     `yaml:"name"`
	Order          int        `yaml:"order"`
	Specifications []seedSpec `yaml:"specifications"`
}

type seedDocCategory struct {
	Name  string `yaml:"name"`
	Slug  string `yaml:"slug"`
	Icon  string `yaml:"icon"`
	Order int    `yaml:"order"`
}

type seedPlatform struct {
	IntroText    string `yaml:"intro_text"`
	PlatformName string `yaml:"platform_name"`
	Hardware     string `yaml:"hardware"`
	AppType      string `yaml:"app_type"`
	Languages    string `yaml:"languages"`
}

type seedModule struct {
	Title       string `yaml:"title"`
	Icon        string `yaml:"icon"`
	Description string `yaml:"description"`
	TechDetails string `yaml:"tech_details"`
	Order       int    `yaml:"order"`
}

type seedInterface struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	Order int    `yaml:"order"`
}

type seedPlan struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	Order       int    `yaml:"order"`
}

func loadSeeds() (*seedFile, error) {
	var s seedFile
	if err := yaml.Unmarshal(seedsYAML, &s); err != nil {
		return nil, fmt.Errorf("parse seeds: %w", err)
	}
	return &s, nil
}

var initSiteCmd = &cobra.Command{
	Use:   "init-site",
	Short: "Create site settings and base catalog content",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSeeds(func(db *gorm.DB, s *seedFile) error {
			return initSite(cmd.Context(), db, s, cmd.OutOrStdout())
		})
	},
}

var initSoftwareCmd = &cobra.Command{
	Use:   "init-software",
	Short: "Seed the software section: platform, modules, interfaces and roadmap",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSeeds(func(db *gorm.DB, s *seedFile) error {
			return initSoftware(cmd.Context(), db, s, cmd.OutOrStdout())
		})
	},
}

var updateSiteNameCmd = &cobra.Command{
	Use:   "update-site-name",
	Short: "Apply the Arsenal branding to the site settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSeeds(func(db *gorm.DB, s *seedFile) error {
			return updateSiteName(cmd.Context(), db, s, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(initSiteCmd, initSoftwareCmd, updateSiteNameCmd)
}

func withSeeds(fn func(*gorm.DB, *seedFile) error) error {
	s, err := loadSeeds()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB(db)
	return fn(db, s)
}

func initSite(ctx context.Context, db *gorm.DB, s *seedFile, out io.Writer) error {
	existed, err := repo.SiteSettingsExists(ctx, db)
	if err != nil {
		return err
	}
	if _, err := repo.GetOrCreateSiteSettings(ctx, db); err != nil {
		return err
	}
	if existed {
		fmt.Fprintln(out, "site settings already exist")
	} else {
		fmt.Fprintln(out, "site settings created")
	}

	for _, f := range s.Site.Features {
		created, err := repo.SeedFeature(ctx, db, &domain.Feature{
			Title:       f.Title,
			Icon:        f.Icon,
			Description: f.Description,
			Order:       f.Order,
			IsActive:    true,
		})
		if err != nil {
			return fmt.Errorf("feature %q: %w", f.Title, err)
		}
		report(out, created, "feature", f.Title)
	}

	for _, g := range s.Site.SpecificationGroups {
		group := &domain.SpecificationGroup{Name: g.Name, Order: g.Order}
		for _, sp := range g.Specifications {
			group.Specifications = append(group.Specifications, domain.Specification{
				Name:  sp.Name,
				Value: sp.Value,
				Order: sp.Order,
			})
		}
		created, err := repo.SeedSpecificationGroup(ctx, db, group)
		if err != nil {
			return fmt.Errorf("specification group %q: %w", g.Name, err)
		}
		report(out, created, "specification group", g.Name)
	}

	for _, c := range s.Site.DocumentCategories {
		created, err := repo.SeedDocumentCategory(ctx, db, &domain.DocumentCategory{
			Name:  c.Name,
			Slug:  c.Slug,
			Icon:  c.Icon,
			Order: c.Order,
		})
		if err != nil {
			return fmt.Errorf("document category %q: %w", c.Slug, err)
		}
		report(out, created, "document category", c.Slug)
	}
	return nil
}

func initSoftware(ctx context.Context, db *gorm.DB, s *seedFile, out io.Writer) error {
	exists, err := repo.PlatformExists(ctx, db)
	if err != nil {
		return err
	}
	if exists {
		fmt.Fprintln(out, "software platform already exists")
	} else {
		p := s.Software.Platform
		if err := repo.SavePlatform(ctx, db, &domain.SoftwarePlatform{
			IntroText:    p.IntroText,
			PlatformName: p.PlatformName,
			Hardware:     p.Hardware,
			AppType:      p.AppType,
			Languages:    p.Languages,
		}); err != nil {
			return fmt.Errorf("software platform: %w", err)
		}
		fmt.Fprintln(out, "software platform created")
	}

	for _, m := range s.Software.Modules {
		created, err := repo.SeedSoftwareModule(ctx, db, &domain.SoftwareModule{
			Title:       m.Title,
			Icon:        m.Icon,
			Description: m.Description,
			TechDetails: m.TechDetails,
			Order:       m.Order,
			IsActive:    true,
		})
		if err != nil {
			return fmt.Errorf("module %q: %w", m.Title, err)
		}
		report(out, created, "module", m.Title)
	}

	for _, h := range s.Software.Interfaces {
		created, err := repo.SeedHardwareInterface(ctx, db, &domain.HardwareInterface{
			Name:     h.Name,
			Value:    h.Value,
			Order:    h.Order,
			IsActive: true,
		})
		if err != nil {
			return fmt.Errorf("interface %q: %w", h.Name, err)
		}
		report(out, created, "interface", h.Name)
	}

	for _, p := range s.Software.Plans {
		created, err := repo.SeedDevelopmentPlan(ctx, db, &domain.DevelopmentPlan{
			Title:       p.Title,
			Description: p.Description,
			Status:      p.Status,
			Order:       p.Order,
			IsActive:    true,
		})
		if err != nil {
			return fmt.Errorf("plan %q: %w", p.Title, err)
		}
		report(out, created, "plan", p.Title)
	}
	return nil
}

func updateSiteName(ctx context.Context, db *gorm.DB, s *seedFile, out io.Writer) error {
	exists, err := repo.SiteSettingsExists(ctx, db)
	if err != nil {
		return err
	}
	if !exists {
		fmt.Fprintln(out, "site settings not found; run init-site first")
		return nil
	}

	settings, err := repo.GetOrCreateSiteSettings(ctx, db)
	if err != nil {
		return err
	}
	settings.SiteTitle = s.Branding.SiteTitle
	settings.SiteDescription = s.Branding.SiteDescription
	settings.HeroTitle = s.Branding.HeroTitle
	if err := repo.SaveSiteSettings(ctx, db, settings); err != nil {
		return err
	}

	fmt.Fprintf(out, "site_title=%s\nsite_description=%s\nhero_title=%s\n",
		settings.SiteTitle, settings.SiteDescription, settings.HeroTitle)
	return nil
}

func report(out io.Writer, created bool, kind, name string) {
	if created {
		fmt.Fprintf(out, "  + %s: %s\n", kind, name)
	}
}
