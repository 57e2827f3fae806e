// cmd/tools/worker-generator/main.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"tender-workers/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name           string
	PackageName    string
	Dir            string
	TaskType       string
	Description    string
	InputProps     map[string]interface{}
	OutputProps    map[string]interface{}
	ErrorCodes     []string
	DefaultTimeout string
	MaxRetries     int
}

// goTypeFromJSONType maps JSON schema types to Go types
func goTypeFromJSONType(jsonType interface{}) string {
	jt, ok := jsonType.(string)
	if !ok {
		return "interface{}"
	}
	switch jt {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		return "[]interface{}"
	default:
		return "interface{}"
	}
}

// jsonTagFromProperty creates a JSON tag for a property
func jsonTagFromProperty(propName string, required bool) string {
	if required {
		return fmt.Sprintf("`json:\"%s\"`", propName)
	}
	return fmt.Sprintf("`json:\"%s,omitempty\"`", propName)
}

// exportName turns a camelCase property into an exported Go identifier.
func exportName(prop string) string {
	if prop == "" {
		return prop
	}
	name := strings.ToUpper(prop[:1]) + prop[1:]
	if strings.HasSuffix(name, "Id") {
		name = strings.TrimSuffix(name, "Id") + "ID"
	}
	if strings.HasSuffix(name, "Ids") {
		name = strings.TrimSuffix(name, "Ids") + "IDs"
	}
	return name
}

// generateStructFields generates Go struct field definitions from schema
// properties, in name order.
func generateStructFields(properties map[string]interface{}, required []string) string {
	names := make([]string, 0, len(properties))
	for prop := range properties {
		names = append(names, prop)
	}
	sort.Strings(names)

	isRequired := make(map[string]bool, len(required))
	for _, r := range required {
		isRequired[r] = true
	}

	var fields []string
	for _, prop := range names {
		details, ok := properties[prop].(map[string]interface{})
		if !ok {
			continue
		}
		comment := ""
		if d, ok := details["description"].(string); ok && d != "" {
			comment = " // " + d
		}
		fields = append(fields, fmt.Sprintf("\t%s %s %s%s",
			exportName(prop), goTypeFromJSONType(details["type"]), jsonTagFromProperty(prop, isRequired[prop]), comment))
	}
	return strings.Join(fields, "\n")
}

// durationLiteral renders the activity timeout as Go source, defaulting to 10s.
func durationLiteral(activity *registry.Activity) string {
	d, err := activity.TimeoutDuration()
	if err != nil {
		d = 10 * time.Second
	}
	if d%time.Second == 0 {
		return fmt.Sprintf("%d * time.Second", d/time.Second)
	}
	return fmt.Sprintf("%d * time.Millisecond", d/time.Millisecond)
}

func newWorkerData(activity *registry.Activity) WorkerData {
	return WorkerData{
		Name:           activity.DisplayName,
		PackageName:    strings.ReplaceAll(activity.ID, "-", ""),
		Dir:            activity.ID,
		TaskType:       activity.TaskType,
		Description:    activity.Description,
		InputProps:     registry.SchemaProperties(activity.InputSchema),
		OutputProps:    registry.SchemaProperties(activity.OutputSchema),
		ErrorCodes:     activity.ErrorCodes,
		DefaultTimeout: durationLiteral(activity),
		MaxRetries:     activity.Retries,
	}
}

// generate renders every template for the activity into dir and returns the
// written paths. Existing files are left untouched unless force is set.
func generate(activity *registry.Activity, dir string, force bool) ([]string, error) {
	data := newWorkerData(activity)
	inputRequired := registry.SchemaRequired(activity.InputSchema)
	outputRequired := registry.SchemaRequired(activity.OutputSchema)

	funcMap := template.FuncMap{
		"inputFields":  func() string { return generateStructFields(data.InputProps, inputRequired) },
		"outputFields": func() string { return generateStructFields(data.OutputProps, outputRequired) },
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)

	var written []string
	for _, filename := range names {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil && !force {
			return written, fmt.Errorf("%s already exists (use -force to overwrite)", path)
		}

		tmpl, err := template.New(filename).Funcs(funcMap).Parse(templates[filename])
		if err != nil {
			return written, fmt.Errorf("parse template %s: %w", filename, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return written, fmt.Errorf("execute template %s: %w", filename, err)
		}
		src, err := format.Source(buf.Bytes())
		if err != nil {
			return written, fmt.Errorf("format %s: %w", filename, err)
		}
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func main() {
	activity := flag.String("activity", "", "Task type from the registry (e.g., analyze-tender)")
	outputDir := flag.String("output", "./internal/workers/tender/", "Output directory for the generated worker")
	registryPath := flag.String("registry", registry.DefaultPath, "Path to the activity registry JSON file")
	force := flag.Bool("force", false, "Overwrite existing files")
	flag.Parse()

	if *activity == "" {
		fmt.Println("Usage: worker-generator -activity <id> [-output <dir>] [-registry <path>] [-force]")
		fmt.Println("\nExample:")
		fmt.Println("  go run ./cmd/tools/worker-generator -activity index-tender-analysis")
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Printf("Error loading registry from %s: %v\n", *registryPath, err)
		os.Exit(1)
	}

	found, ok := reg.Find(*activity)
	if !ok {
		fmt.Printf("Activity '%s' not found in registry %s\n", *activity, *registryPath)
		os.Exit(1)
	}

	workerDir := filepath.Join(*outputDir, found.ID)
	written, err := generate(found, workerDir, *force)
	for _, path := range written {
		fmt.Printf("✓ Generated %s\n", path)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Worker scaffold generated successfully at: %s\n", workerDir)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Implement execute in handler.go\n")
	fmt.Printf("  2. Extend handler_test.go\n")
	fmt.Printf("  3. Register the worker in cmd/worker-manager/workers.go\n")
	fmt.Printf("  4. Add workers.%s to configs/config.yaml\n", found.TaskType)
}
