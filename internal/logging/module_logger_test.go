package logging

import (
	"context"
	"testing"

	"github.com/littlemoon-zh/littlemoon-zh.github.io/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "site.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger = WithFields(logger, map[string]any{"foo": "bar"})
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, contentModule)

	if len(provider.requested) != 1 || provider.requested[0] != contentModule {
		t.Fatalf("expected module %s, got %v", contentModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0]["module"]; got != contentModule {
		t.Fatalf("expected module field %s, got %v", contentModule, got)
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
	if rec.fields[0]["module"] != rootModule {
		t.Fatalf("expected module field %s, got %v", rootModule, rec.fields[0]["module"])
	}
}

func TestNamedModuleLoggers(t *testing.T) {
	cases := []struct {
		name   string
		build  func(interfaces.LoggerProvider) interfaces.Logger
		module string
	}{
		{name: "content", build: ContentLogger, module: contentModule},
		{name: "markdown", build: MarkdownLogger, module: markdownModule},
		{name: "storage", build: StorageLogger, module: storageModule},
		{name: "mcp", build: MCPLogger, module: mcpModule},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{logger: &recordingLogger{}}
			_ = tc.build(provider)
			if len(provider.requested) == 0 || provider.requested[0] != tc.module {
				t.Fatalf("expected %s module request, got %v", tc.module, provider.requested)
			}
		})
	}
}

func TestWithDocumentContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithDocumentContext(rec, "notes", " hello.mdx ", "")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one fields call, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldKind] != "notes" || fields[fieldFile] != "hello.mdx" {
		t.Fatalf("unexpected fields %#v", fields)
	}
	if _, ok := fields[fieldSlug]; ok {
		t.Fatalf("expected empty slug to be skipped, got %#v", fields)
	}
}

func TestFromContextAppliesContextFields(t *testing.T) {
	rec := &recordingLogger{}
	ctx := ContextWithFields(context.Background(), map[string]any{"run_id": "abc"})
	ctx = ContextWithFields(ctx, map[string]any{"command": "list"})

	_ = FromContext(ctx, rec)

	if len(rec.contexts) != 1 || rec.contexts[0] != ctx {
		t.Fatalf("expected context to be bound, got %#v", rec.contexts)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected one fields call, got %d", len(rec.fields))
	}
	if rec.fields[0]["run_id"] != "abc" || rec.fields[0]["command"] != "list" {
		t.Fatalf("expected merged context fields, got %#v", rec.fields[0])
	}
}

func TestContextFieldsReturnsCopy(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"run_id": "abc"})
	fields := ContextFields(ctx)
	fields["run_id"] = "mutated"

	if got := ContextFields(ctx)["run_id"]; got != "abc" {
		t.Fatalf("expected stored fields to be isolated, got %v", got)
	}
	if ContextFields(context.Background()) != nil {
		t.Fatal("expected nil fields for bare context")
	}
}
