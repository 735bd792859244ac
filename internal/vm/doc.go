/*
Package vm simulates the TASM machine: a single flat tape of cells
partitioned into data, stack, display and code regions, executed by a
fetch-decode-execute loop over a small primitive instruction set.

The assembler in the asm package writes primitives into the code region of a
Machine's tape; Run then executes them until a halt or fault. Five privileged
cells at the bottom of data memory act as machine registers: a scratch slot,
the comparison flags, the display write cursor and the call-stack cursor.
*/
package vm
