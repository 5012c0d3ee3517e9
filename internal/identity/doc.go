// Package identity computes canonical entry keys and assigns stable
// device ids for (model, hardware variant) pairs.
package identity
