package forms

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
)

const DefaultOptionTTL = time.Minute

// Request selects the build path: explicit Fields win, then the static
// config for EntityType, then inference over Data.
type Request struct {
	EntityType string         `json:"entityType,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	Fields     []Field        `json:"fields,omitempty"`
	Create     bool           `json:"create,omitempty"`
	ClinicID   *int           `json:"clinicId,omitempty"`
}

// Builder constructs forms. Option lists are cached for the configured TTL.
type Builder struct {
	clinics  ports.ClinicService
	roles    ports.RoleService
	validate *validator.Validate
	cache    *cache.Cache
	log      zerolog.Logger
}

func NewBuilder(clinics ports.ClinicService, roles ports.RoleService, ttl time.Duration, log zerolog.Logger) *Builder {
	if ttl <= 0 {
		ttl = DefaultOptionTTL
	}
	return &Builder{
		clinics:  clinics,
		roles:    roles,
		validate: validator.New(),
		cache:    cache.New(ttl, 2*ttl),
		log:      log,
	}
}

func (b *Builder) Build(ctx context.Context, req Request) (*Form, error) {
	var fields []Field
	switch cfg, ok := Configs[req.EntityType]; {
	case len(req.Fields) > 0:
		fields = b.explicit(req.Fields)
	case ok:
		fields = b.fromConfig(ctx, req, cfg)
	case req.Data != nil:
		fields = b.infer(req.Data)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEntity, req.EntityType)
	}
	return newForm(fields, b.validate), nil
}

// InvalidateOptions drops cached option lists, e.g. after a clinic is created.
func (b *Builder) InvalidateOptions() {
	b.cache.Flush()
}

func (b *Builder) fromConfig(ctx context.Context, req Request, cfg []FieldConfig) []Field {
	var clinicOpts []Option
	if clinicOptionEntities[req.EntityType] {
		clinicOpts = b.options(ctx, SourceClinics, nil)
	}

	fields := make([]Field, 0, len(cfg))
	for _, c := range cfg {
		f, err := b.configField(c, req.Data, clinicOpts)
		if err != nil {
			b.log.Warn().Err(err).Str("entity", req.EntityType).Str("field", c.Key).Msg("skipping form field")
			continue
		}
		fields = append(fields, f)
	}

	if req.EntityType == EntityUser && req.Create {
		roles := b.options(ctx, SourceRoles, req.ClinicID)
		for i := range fields {
			if fields[i].Key != "roleId" {
				continue
			}
			fields[i].Options = roles
			if !fields[i].Required() {
				fields[i].Validators = append([]string{"required"}, fields[i].Validators...)
			}
		}
	}
	return fields
}

func (b *Builder) configField(c FieldConfig, data map[string]any, clinicOpts []Option) (Field, error) {
	if c.Key == "" {
		return Field{}, fmt.Errorf("field has no key")
	}
	rules := normalizeRules(c.Validate)
	if err := b.checkRules(rules); err != nil {
		return Field{}, err
	}

	f := Field{
		Key:        c.Key,
		Label:      c.Label,
		Type:       c.Type,
		Value:      c.Default,
		Validators: rules,
		Options:    slices.Clone(c.Options),
		Disabled:   c.Disabled,
	}
	if f.Label == "" {
		f.Label = labelFor(c.Key)
	}
	if v, ok := data[c.Key]; ok && v != nil {
		f.Value = v
	}

	switch c.Source {
	case "":
	case SourceClinics:
		f.Options = clinicOpts
	case SourceRoles:
		// filled in creation mode only
	default:
		return Field{}, fmt.Errorf("unknown option source %q", c.Source)
	}

	if c.Key == "clinic" && !isBlank(f.Value) {
		f.Disabled = true
	}
	return f, nil
}

func (b *Builder) explicit(in []Field) []Field {
	fields := make([]Field, 0, len(in))
	for _, f := range in {
		if f.Key == "" {
			b.log.Warn().Msg("skipping form field without key")
			continue
		}
		f.Validators = normalizeRules(f.Validators...)
		if err := b.checkRules(f.Validators); err != nil {
			b.log.Warn().Err(err).Str("field", f.Key).Msg("skipping form field")
			continue
		}
		if f.Label == "" {
			f.Label = labelFor(f.Key)
		}
		fields = append(fields, f)
	}
	return fields
}

func (b *Builder) infer(data map[string]any) []Field {
	keys := slices.Sorted(maps.Keys(data))
	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		if _, skip := excludedKeys[k]; skip {
			continue
		}
		switch data[k].(type) {
		case map[string]any, []any:
			b.log.Debug().Str("field", k).Msg("not inferring nested value")
			continue
		}
		typ, opts := InferType(k)
		f := Field{Key: k, Label: labelFor(k), Type: typ, Value: data[k], Options: slices.Clone(opts)}
		if typ == Email {
			f.Validators = []string{"email"}
		}
		fields = append(fields, f)
	}
	return fields
}

// checkRules rejects rule sets the validator cannot run. The validator
// panics on unknown tags and unparsable params, so probe it here once.
func (b *Builder) checkRules(rules []string) (err error) {
	if len(rules) == 0 {
		return nil
	}
	tag := ruleTag(rules)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid validators %q: %v", tag, r)
		}
	}()
	for _, probe := range []string{"", "x"} {
		_ = b.validate.Var(probe, tag)
	}
	return nil
}

func (b *Builder) options(ctx context.Context, src OptionSource, clinicID *int) []Option {
	key := string(src)
	if clinicID != nil {
		key += ":" + strconv.Itoa(*clinicID)
	}
	if v, ok := b.cache.Get(key); ok {
		return slices.Clone(v.([]Option))
	}

	var (
		opts []Option
		err  error
	)
	switch src {
	case SourceClinics:
		opts, err = b.clinicOptions(ctx)
	case SourceRoles:
		opts, err = b.roleOptions(ctx, clinicID)
	}
	if err != nil {
		b.log.Warn().Err(err).Str("source", string(src)).Msg("failed to load form options")
		return nil
	}
	b.cache.SetDefault(key, opts)
	return slices.Clone(opts)
}

func (b *Builder) clinicOptions(ctx context.Context) ([]Option, error) {
	clinics, err := b.clinics.List(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(clinics))
	for _, c := range clinics {
		if c.ID != nil {
			opts = append(opts, Option{Value: *c.ID, Label: c.Name})
		}
	}
	return opts, nil
}

func (b *Builder) roleOptions(ctx context.Context, clinicID *int) ([]Option, error) {
	roles, err := b.roles.List(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(roles))
	for _, r := range roles {
		if r.ID != nil {
			opts = append(opts, Option{Value: *r.ID, Label: r.Name})
		}
	}
	return opts, nil
}

// ruleTag joins rules into one validator tag. Fields without "required"
// accept empty values.
func ruleTag(rules []string) string {
	if slices.Contains(rules, "required") || slices.Contains(rules, "omitempty") {
		return strings.Join(rules, ",")
	}
	return "omitempty," + strings.Join(rules, ",")
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case int:
		return x == 0
	case float64:
		return x == 0
	}
	return false
}
