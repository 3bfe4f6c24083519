// Package notation renders RGB colors as text in one of four notations.
//
// # Formats
//
//   - Hex: "#RRGGBB", uppercase digits
//   - RGB: "rgb(R,G,B)", decimal 0-255, no spaces
//   - CMYK: "cmyk(C,M,Y,K)", each a 0-1 fraction rounded to two decimals
//     with trailing zeros trimmed, e.g. "cmyk(0,0.5,1,0.25)"
//   - HSL: "hsl(H,S%,L%)", H in integer degrees [0,360), S and L integer
//     percentages
//
// Unknown notation names select Hex. Formatting never fails: every 8-bit
// RGB triple is representable in all four notations.
package notation
