// Package table implements the open-addressed Robin-Hood hash table that
// powers every map and set variant: typed and erased, ordered and
// unordered.
//
// One Core drives them all. Entries live in two parallel blocks (keys
// and values) sized to the table capacity, with occupancy tracked in a
// byte-per-slot info region: 0 is empty, anything else encodes the probe
// distance from the key's home bucket, biased by the current distance
// increment. The Robin-Hood property holds at all times: scanning
// rightward, no slot is placed worse than the one after it.
//
// Capacity is always a power of two (at least 8). When the load factor
// or the info byte range is exhausted, the table first tries to halve
// the distance increment (doubling the representable probe distance in
// place), then rehashes at double capacity with a mutated hash
// multiplier to break adversarial probe patterns.
//
// Pairs store on-slot when small, out-of-line through a geometric bulk
// pool when large; out-of-line slots swap by exchanging pointers.
//
// The ordered variants thread an insertion-order list through the slots
// and iterate along it; they order by insertion, never by key.
package table
