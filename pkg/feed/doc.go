// Package feed decodes inventory menu feeds into flat item lists and derives the
// price, unit and lineage values every menu variant reads.
package feed
