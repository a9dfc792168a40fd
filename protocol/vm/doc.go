/*
Package vm implements an interpreter for TEAL-style stack programs.

A program is newline-delimited mnemonic source. Parse splits it into
instructions and records label positions; an Interpreter then binds
each instruction to its opcode, decodes its operands, seeds a Context
from a configuration document and steps through the program one
instruction at a time. Execute does all of that in one call.

Each step runs three phases:
  - validateOperand decodes immediates (memoized, and run eagerly by Load)
  - validateContext checks stack depth and value tags, plus any
    opcode-specific bounds, without touching the stack
  - exec performs the effect and returns a Directive saying where
    control goes next

Opcodes are grouped by category, each in its own file:
  - numeric (integer arithmetic, comparison, logic)
  - splice (byte strings)
  - bytemath (byte-string arithmetic)
  - crypto
  - constants
  - stackops
  - scratch
  - introspection (transaction, group and global fields)
  - state (accounts, application and asset tables)
  - inner (inner transactions)
  - control

State the program needs but the context lacks is requested through
the Context's Request and Require methods. These give the host's
MissingFunc a single chance per path to supply it before the
instruction fails with ErrMissingConfig.
*/
package vm
