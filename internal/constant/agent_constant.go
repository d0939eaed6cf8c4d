package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"
)

// Agent node names. The supervisor picks one of the three specialized nodes;
// every specialized node transitions to NodeEnd.
const (
	NodeSupervisor  = "supervisor"
	NodeSearchAgent = "search_agent"
	NodeCartAgent   = "cart_agent"
	NodeGeneralChat = "general_chat"
	NodeEnd         = "end"
)

const SupervisorSystemPromptV1 = `You are a helpful shopping assistant. Your goal is to help users find products and buy them.

If the user asks for a product, use the 'search_agent'.
If the user wants to buy or add to cart, use the 'cart_agent'.
If the user is just chatting, use the 'general_chat'.

Respond with ONLY the name of the next agent: 'search_agent', 'cart_agent', or 'general_chat'.`

const GenericChatErrorResponseV1 = "I'm sorry, I didn't get that."
