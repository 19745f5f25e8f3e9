package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-compass/internal/catalog"
	"github.com/jonathan/career-compass/internal/db"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect or seed the career catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the careers in the configured catalog",
	RunE:  runCatalogList,
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the file or embedded catalog into PostgreSQL",
	Long:  "Creates the schema if needed and upserts every career from catalog.path (or the embedded catalog) into the careers table.",
	RunE:  runCatalogSeed,
}

var catalogListJSON bool

func init() {
	catalogListCmd.Flags().BoolVar(&catalogListJSON, "json", false, "Print the catalog as JSON")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSeedCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	database, err := connectDatabase(ctx, appConfig, appLogger)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	cat, err := loadCatalog(ctx, appConfig, database)
	if err != nil {
		return err
	}

	if catalogListJSON {
		return writeJSON(cmd.OutOrStdout(), "", cat.All())
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tSECTOR\tEDUCATION\tSALARY")
	for _, c := range cat.All() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", c.ID, c.Title, c.Sector, c.RequiredEducation, c.AverageSalary)
	}
	return tw.Flush()
}

func runCatalogSeed(cmd *cobra.Command, _ []string) error {
	if appConfig.Database.URL == "" {
		return fmt.Errorf("database.url (CAREER_DATABASE_URL) is required to seed the catalog")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, appConfig.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	var cat *catalog.Catalog
	if appConfig.Catalog.Path != "" {
		cat, err = catalog.LoadFile(appConfig.Catalog.Path)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return err
	}

	if err := database.UpsertCareers(ctx, cat.All()); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully seeded %d careers\n", cat.Len())
	return nil
}
