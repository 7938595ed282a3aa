// Package frames discovers, orders, and decodes the still images that make up
// an animation.
//
// Files are ordered by the integer before the first "." in their name so that
// 2.png precedes 10.png. Names without a numeric prefix fall back to key 0;
// the fallback is carried on the key and logged rather than hidden. Loading is
// eager and all-or-nothing: one undecodable entry fails the whole directory.
package frames
