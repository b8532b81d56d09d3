// Package domain models a single wildfire damage prediction: the feature
// record a user submits, the classifier behind it and the label shown back.
//
// # Feature Record
//
// The classifier was trained on CAL FIRE damage inspection (DINS) data. A
// record always carries the same eight columns, in this order:
//
//	Assessed Improved Value (parcel)   integer, 0..5,000,000
//	Structure Category                 7 values
//	Roof Construction                  11 values
//	Eaves                              6 values
//	Vent Screen                        10 values
//	Exterior Siding                    10 values
//	Window Pane                        7 values
//	Fence Attached to Structure        4 values
//
// Column names must match the training frame exactly, since the fitted
// preprocessor looks columns up by name. Categorical values are closed
// string types; the spellings (including duplicates such as "Stucco Brick
// Cement" vs "Stucco/Brick/Cement") are copied from the inspection data.
//
// # Damage Codes
//
// The classifier returns the index of the training label encoder, which
// sorted the DINS damage strings alphabetically:
//
//	0 Affected (1-9%)    yellow
//	1 Destroyed (>50%)   red
//	2 Major (26-50%)     light red
//	3 Minor (10-25%)     orange
//	4 No Damage          green
//
// Any other code presents as "Unknown" in gray. The encoding is an
// assumption about the training run; artifacts that carry their own class
// names are checked against this table when loaded (see package artifact).
package domain
