package syntax

// Node kind names the collector and rewriters recognize (SPEC_FULL §3,
// §4.2). These are the grammar's own node type strings; the core never
// constructs a grammar, it only matches on the kinds a Pascal tree-sitter
// grammar is expected to produce.
const (
	KindGenericTpl  = "genericTpl"
	KindTyperefTpl  = "typerefTpl"
	KindExprTpl     = "exprTpl"
	KindExprUnary   = "exprUnary"
	KindExprBinary  = "exprBinary"
	KindAssignment  = "assignment"
	KindDefaultValue = "defaultValue"
	KindDeclType    = "declType"
	KindConstDecl   = "constDecl"
	KindTypeDecl    = "typeDecl"
	KindError       = "ERROR"

	KindUses           = "usesSection"
	KindUnitHeader     = "unitHeader"
	KindProgramHeader  = "programHeader"
	KindProcedureDecl  = "procedureDecl"
	KindFunctionDecl   = "functionDecl"
	KindKeywordSection = "keywordSection"
)
