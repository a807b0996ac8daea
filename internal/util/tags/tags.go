package tags

// Standard tag keys for provisioned Azure resources. Azure tag names may not
// contain slashes, so plain kebab-case keys are used instead of a domain
// prefix.
const (
	// KeyManagedBy identifies the management system.
	KeyManagedBy = "managed-by"

	// KeyPurpose identifies what the resource is for.
	KeyPurpose = "purpose"

	// KeyIdentity records which bootstrap identity owns the resource.
	KeyIdentity = "bootstrap-identity"
)

// Tag values.
const (
	ManagedByTfbackend = "tfbackend"
	PurposeRemoteState = "terraform-remote-state"
)

// Builder provides a fluent interface for building Azure resource tag sets.
type Builder struct {
	tags map[string]string
}

// NewBuilder creates a tag builder with the managed-by and purpose tags
// pre-set.
func NewBuilder() *Builder {
	return &Builder{
		tags: map[string]string{
			KeyManagedBy: ManagedByTfbackend,
			KeyPurpose:   PurposeRemoteState,
		},
	}
}

// WithIdentity records the bootstrap identity name.
func (b *Builder) WithIdentity(identity string) *Builder {
	b.tags[KeyIdentity] = identity
	return b
}

// Merge adds all tags from the provided map.
func (b *Builder) Merge(extra map[string]string) *Builder {
	for k, v := range extra {
		b.tags[k] = v
	}
	return b
}

// Build returns a copy of the tag map.
// Returns a copy to prevent external mutations.
func (b *Builder) Build() map[string]string {
	result := make(map[string]string, len(b.tags))
	for k, v := range b.tags {
		result[k] = v
	}
	return result
}

// BuildPtr returns the tags in the map-of-pointers form the ARM clients take.
func (b *Builder) BuildPtr() map[string]*string {
	result := make(map[string]*string, len(b.tags))
	for k, v := range b.tags {
		v := v
		result[k] = &v
	}
	return result
}
