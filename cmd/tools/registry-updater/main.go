// cmd/tools/registry-updater/main.go
package main

import (
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"tender-workers/pkg/registry"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		help(out)
		return fmt.Errorf("a command is required")
	}

	switch args[0] {
	case "add":
		return runAdd(args[1:], out)
	case "update":
		return runUpdate(args[1:], out)
	case "validate":
		return runValidate(args[1:], out)
	case "list":
		return runList(args[1:], out)
	case "help", "-h", "--help":
		help(out)
		return nil
	default:
		help(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newFlagSet(name string, out io.Writer) (*flag.FlagSet, *string) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(out)
	path := flags.String("path", registry.DefaultPath, "Path to registry file")
	return flags, path
}

func runAdd(args []string, out io.Writer) error {
	flags, path := newFlagSet("add", out)
	id := flags.String("id", "", "Activity ID (e.g., analyze-tender)")
	displayName := flags.String("displayName", "", "Display Name (e.g., Analyze Tender)")
	description := flags.String("description", "", "Description")
	category := flags.String("category", "tender", "Category")
	taskType := flags.String("taskType", "", "Camunda Task Type (defaults to the id)")
	version := flags.String("version", "1.0.0", "Version")
	status := flags.String("status", "planned", "Implementation Status (planned, in-progress, completed, verified)")
	timeout := flags.String("timeout", "10s", "Job timeout (e.g., 30s)")
	retries := flags.Int("retries", 3, "Job retries")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *id == "" || *displayName == "" || *description == "" {
		flags.Usage()
		return fmt.Errorf("id, displayName and description are required for add")
	}
	if *taskType == "" {
		*taskType = *id
	}

	activity := registry.Activity{
		ID:                   *id,
		DisplayName:          *displayName,
		Description:          *description,
		Category:             *category,
		Version:              *version,
		TaskType:             *taskType,
		ImplementationStatus: *status,
		InputSchema:          map[string]interface{}{"type": "object"},
		OutputSchema:         map[string]interface{}{"type": "object"},
		ErrorCodes:           []string{},
		Timeout:              *timeout,
		Retries:              *retries,
		Workflows:            []string{},
		Tags:                 []string{},
	}
	if _, err := activity.TimeoutDuration(); err != nil {
		return err
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = registry.New()
	}
	if err := reg.Add(activity); err != nil {
		return err
	}
	if err := reg.Save(*path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Added activity: %s\n", *id)
	return nil
}

func runUpdate(args []string, out io.Writer) error {
	flags, path := newFlagSet("update", out)
	id := flags.String("id", "", "Activity ID to update")
	field := flags.String("field", "", "Field to update (status, version, timeout, retries, errorCodes, workflows, ...)")
	value := flags.String("value", "", "New value for the field")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *id == "" || *field == "" || *value == "" {
		flags.Usage()
		return fmt.Errorf("id, field and value are required for update")
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	var activity *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == *id {
			activity = &reg.Activities[i]
			break
		}
	}
	if activity == nil {
		return fmt.Errorf("activity with ID %s not found", *id)
	}

	if err := setField(activity, *field, *value); err != nil {
		return err
	}

	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	if err := reg.Save(*path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Updated activity %s, field %s to %s\n", *id, *field, *value)
	return nil
}

func setField(activity *registry.Activity, field, value string) error {
	switch field {
	case "status":
		activity.ImplementationStatus = value
	case "version":
		activity.Version = value
	case "displayName":
		activity.DisplayName = value
	case "description":
		activity.Description = value
	case "category":
		activity.Category = value
	case "taskType":
		activity.TaskType = value
	case "timeout":
		previous := activity.Timeout
		activity.Timeout = value
		if _, err := activity.TimeoutDuration(); err != nil {
			activity.Timeout = previous
			return err
		}
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil || retries < 0 {
			return fmt.Errorf("invalid retries value %q", value)
		}
		activity.Retries = retries
	case "errorCodes":
		activity.ErrorCodes = splitList(value)
	case "workflows":
		activity.Workflows = splitList(value)
	case "tags":
		activity.Tags = splitList(value)
	default:
		return fmt.Errorf("unknown field: %s", field)
	}
	return nil
}

func runValidate(args []string, out io.Writer) error {
	flags, path := newFlagSet("validate", out)
	if err := flags.Parse(args); err != nil {
		return err
	}
	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	fmt.Fprintf(out, "Found %d activities.\nRegistry validation passed.\n", len(reg.Activities))
	return nil
}

func runList(args []string, out io.Writer) error {
	flags, path := newFlagSet("list", out)
	if err := flags.Parse(args); err != nil {
		return err
	}
	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TASK TYPE\tSTATUS\tTIMEOUT\tRETRIES\tERROR CODES")
	for _, a := range reg.Activities {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", a.TaskType, a.ImplementationStatus, a.Timeout, a.Retries, strings.Join(a.ErrorCodes, ","))
	}
	return tw.Flush()
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func help(out io.Writer) {
	fmt.Fprintln(out, `
Usage: registry-updater <command> [flags]

Commands:
  add      Add a new activity to the registry
  update   Update an existing activity's field
  validate Validate the registry file
  list     Print task types with their timeouts, retries and error codes
  help     Show this help message

Examples:
  registry-updater add -id index-tender-analysis -displayName "Index Tender Analysis" -description "Indexes an analysis result for search"
  registry-updater update -id analyze-tender -field retries -value 3
  registry-updater update -id analyze-tender -field errorCodes -value TENDER_INPUT_INVALID,POLICY_INVALID
  registry-updater validate -path configs/activity-registry.json

Use 'registry-updater <command> -h' for more information about a command.`)
}
