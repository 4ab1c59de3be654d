// Package reconcile provides the shared building blocks for reconciling desired
// state against state held by a remote destination.
//
// Both destination reconcilers follow the same shape: compare desired state to
// known or remote state, compute a minimal difference, apply it idempotently,
// and remember the result. This package holds the parts that do not depend on
// any particular destination API.
//
// # Components
//
// 1. Schema model: Schema, PropertyDescriptor and CachedSchema describe event
//    definitions with typed properties.
//
// 2. Differ: Diff compares a desired schema to a cached or remote one and
//    classifies the result (FullMatch, PropertiesMissing, NoMatch). Irreconcilable
//    type conflicts are returned as validation faults.
//
// 3. SchemaCache: a bounded LRU with a fixed TTL, keyed by scope id and schema
//    name. Calls without a scope id bypass it and are counted in metrics.
//    SchemaCache.Do collapses concurrent reconciliations of the same schema.
//
// 4. Match resolver: FindMatch locates an existing sub-record whose match fields
//    equal the desired values, case-insensitively and optionally comparing
//    digits only.
//
// # Usage Example
//
//	cache := reconcile.NewSchemaCache(reconcile.CacheConfig{MaxEntries: 2000, TTL: time.Hour}, m, log)
//
//	if cached, ok := cache.Get(scopeID, desired.Name); ok {
//	    diff, err := reconcile.Diff(desired, &cached.Schema)
//	    ...
//	}
//
//	idx, err := reconcile.FindMatch(existing, desired, []reconcile.FieldSpec{{Name: "number", Numeric: true}})
package reconcile
