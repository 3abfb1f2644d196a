package ledgerapi

const blockByHeightQuery = `query BlockByHeight($height: Int!) {
  block(offset: {height: $height}) {
    hash
    height
    protocolVersion
    timestamp
    author
    parent { hash }
    transactions {
      __typename
      id
      hash
      raw
      protocolVersion
      ... on RegularTransaction {
        identifiers
        merkleTreeRoot
        startIndex
        endIndex
        fees { paidFees estimatedFees }
        transactionResult { status segments { id success } }
      }
      contractActions {
        __typename
        address
        state
        zswapState
        unshieldedBalances { tokenType amount }
        ... on ContractCall { entryPoint }
      }
      unshieldedCreatedOutputs { ...utxo }
      unshieldedSpentOutputs { ...utxo }
      zswapLedgerEvents { __typename id maxId raw }
      dustLedgerEvents {
        __typename
        id
        maxId
        raw
        ... on DustInitialUtxo { output { nonce } }
      }
    }
  }
}

fragment utxo on UnshieldedUtxo {
  owner
  tokenType
  value
  intentHash
  outputIndex
  initialNonce
  registeredForDustGeneration
  ctime
  createdAtTransaction { hash }
  spentAtTransaction { hash }
}`
